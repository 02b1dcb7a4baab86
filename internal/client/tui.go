package client

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/parsa-mehek/LinkingLink-client/internal/models"
	"github.com/parsa-mehek/LinkingLink-client/pkg/logger"
)

const (
	standardFieldWidth = 30
	shortFieldWidth    = 10
	longFieldWidth     = 50

	navHeight    = 3
	statusHeight = 1
	formWidth    = 60
	chartHeight  = 12
	chartWidth   = 72

	pageLogin    = "login"
	pageRegister = "register"
	pageHome     = "home"
	pageProgress = "progress"
	pageDialog   = "dialog"

	defaultUserID   = "demo_user"
	defaultPassword = "Passw0rd!demo" // #nosec G101
	defaultSubject  = "General"
	defaultMinutes  = "30"
)

type TUI struct {
	ctx     context.Context
	app     *tview.Application
	pages   *tview.Pages
	session *Session
	logger  logger.Logger

	status      *tview.TextView
	profileView *tview.TextView
	entryTable  *tview.Table
	chartView   *tview.TextView
	entries     []models.ProgressEntry
	current     string
}

func NewTUI(session *Session, log logger.Logger) *TUI {
	t := &TUI{
		ctx:     context.Background(),
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		session: session,
		logger:  log,
	}

	t.initPages()

	session.OnChange(func(from, to State) {
		t.logger.Debugf("сессия: %s -> %s", from, to)

		t.app.QueueUpdateDraw(func() {
			t.updateStatus()

			if to == StateAnonymous && (t.current == pageHome || t.current == pageProgress) {
				t.showPage(pageLogin)
			}
		})
	})

	return t
}

// Run запускает интерфейс и блокируется до выхода или отмены ctx
func (t *TUI) Run(ctx context.Context) error {
	t.ctx = ctx

	go func() {
		<-ctx.Done()
		t.app.Stop()
	}()

	if t.session.HasToken() {
		t.showHome()
	} else {
		t.showPage(pageLogin)
	}

	return t.app.SetRoot(t.layout(), true).EnableMouse(true).Run()
}

func (t *TUI) initPages() {
	t.status = tview.NewTextView().SetDynamicColors(true)

	t.pages.AddPage(pageLogin, t.createLoginPage(), true, true)
	t.pages.AddPage(pageRegister, t.createRegisterPage(), true, false)
	t.pages.AddPage(pageHome, t.createHomePage(), true, false)
	t.pages.AddPage(pageProgress, t.createProgressPage(), true, false)

	t.current = pageLogin
	t.updateStatus()
}

func (t *TUI) layout() tview.Primitive {
	nav := tview.NewForm().
		AddButton("Главная", t.showHome).
		AddButton("Вход", func() { t.showPage(pageLogin) }).
		AddButton("Регистрация", func() { t.showPage(pageRegister) }).
		AddButton("Прогресс", t.showProgress).
		AddButton("Выход из программы", t.app.Stop)
	nav.SetButtonsAlign(tview.AlignCenter)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nav, navHeight, 0, false).
		AddItem(t.pages, 0, 1, true).
		AddItem(t.status, statusHeight, 0, false)

	root.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			t.showHome()
		case tcell.KeyF2:
			t.showPage(pageLogin)
		case tcell.KeyF3:
			t.showPage(pageRegister)
		case tcell.KeyF4:
			t.showProgress()
		default:
			return event
		}

		return nil
	})

	return root
}

func (t *TUI) showPage(name string) {
	t.current = name
	t.pages.SwitchToPage(name)
	t.updateStatus()
}

func (t *TUI) updateStatus() {
	text := fmt.Sprintf("[gray]F1 Главная  F2 Вход  F3 Регистрация  F4 Прогресс  |  сессия: [white]%s", t.session.State())

	if user, ok := t.session.User(); ok {
		text += fmt.Sprintf(" [gray](%s)", tview.Escape(user.DisplayName()))
	}

	t.status.SetText(text)
}

// background выполняет вызов API вне UI-горутины и применяет результат через QueueUpdateDraw
func background[T any](t *TUI, call func(ctx context.Context) T, apply func(T)) {
	go func() {
		res := call(t.ctx)

		t.app.QueueUpdateDraw(func() {
			apply(res)
		})
	}()
}
