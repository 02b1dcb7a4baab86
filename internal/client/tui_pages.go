package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/parsa-mehek/LinkingLink-client/internal/models"
)

const (
	buttonAreaHeight = 3
	addFormHeight    = 9

	subjectColumn = 0
	notesColumn   = 1
	minutesColumn = 2
	dateColumn    = 3

	emptyNotes = "—"
)

func (t *TUI) createHomePage() tview.Primitive {
	t.profileView = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)

	buttons := tview.NewForm()
	buttons.AddButton("Обновить", t.showHome)
	buttons.AddButton("Прогресс", t.showProgress)
	buttons.AddButton("Выйти", t.logout)
	buttons.SetButtonsAlign(tview.AlignCenter)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.profileView, 0, 1, false).
		AddItem(buttons, buttonAreaHeight, 0, true)

	flex.SetTitle("LinkingLink - Профиль").SetBorder(true)

	return flex
}

// showHome проверяет токен запросом профиля. Без токена или при ошибке
// проверки открывается страница входа.
func (t *TUI) showHome() {
	if !t.session.HasToken() {
		t.showPage(pageLogin)

		return
	}

	t.profileView.SetText("[gray]Загрузка профиля...")
	t.showPage(pageHome)

	background(t, t.session.Verify, func(res Result[models.MeResponse]) {
		if res.Error != nil {
			t.logger.Warnf("проверка токена не прошла: %v", res.Error)
			t.showPage(pageLogin)
			t.showError(DescribeError(OpProfile, res.Error))

			return
		}

		t.renderProfile(res.Data.User)
		t.updateStatus()
	})
}

func (t *TUI) renderProfile(user models.User) {
	var b strings.Builder

	fmt.Fprintf(&b, "[yellow]Добро пожаловать, %s![white]\n\n", tview.Escape(user.DisplayName()))
	fmt.Fprintf(&b, "Имя: %s\n", tview.Escape(orDash(user.Name)))
	fmt.Fprintf(&b, "Идентификатор: %s\n", tview.Escape(orDash(user.UserID)))
	fmt.Fprintf(&b, "Email: %s\n", tview.Escape(orDash(user.Email)))

	if ts, ok := user.Registered(); ok {
		fmt.Fprintf(&b, "Зарегистрирован: %s\n", ts.Local().Format("2006-01-02"))
	} else if user.CreatedAt != "" {
		fmt.Fprintf(&b, "Зарегистрирован: %s\n", tview.Escape(user.CreatedAt))
	}

	t.profileView.SetText(b.String())
}

func (t *TUI) createProgressPage() tview.Primitive {
	form := tview.NewForm()
	form.AddInputField("Предмет", defaultSubject, standardFieldWidth, nil, nil)
	form.AddInputField("Минуты", defaultMinutes, shortFieldWidth, tview.InputFieldInteger, nil)
	form.AddInputField("Заметки", "", longFieldWidth, nil, nil)

	form.AddButton("Добавить", func() {
		req, err := progressRequest(
			formText(form, "Предмет"),
			formText(form, "Минуты"),
			formText(form, "Заметки"),
		)
		if err != nil {
			t.showError(err.Error())

			return
		}

		t.performAddProgress(req)
	})
	form.AddButton("Обновить", t.showProgress)
	form.SetBorder(true).SetTitle("Новая запись")

	t.entryTable = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	t.entryTable.SetBorder(true).SetTitle("Записи")

	t.chartView = tview.NewTextView().SetWrap(false)
	t.chartView.SetBorder(true).SetTitle("Минуты по датам")

	t.renderEntries()

	lower := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.entryTable, 0, 1, false).
		AddItem(t.chartView, chartWidth+4, 0, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, addFormHeight, 0, true).
		AddItem(lower, 0, 1, false)

	flex.SetTitle("LinkingLink - Прогресс").SetBorder(true)

	return flex
}

func (t *TUI) showProgress() {
	if !t.session.HasToken() {
		t.showPage(pageLogin)

		return
	}

	t.showPage(pageProgress)

	background(t, t.session.ListProgress, func(res Result[models.ProgressList]) {
		if res.Error != nil {
			t.logger.Warnf("не удалось загрузить записи: %v", res.Error)
			t.showError(DescribeError(OpProgress, res.Error))

			return
		}

		t.entries = res.Data.Items
		t.renderEntries()
	})
}

func (t *TUI) performAddProgress(req models.ProgressRequest) {
	background(t, func(ctx context.Context) Result[models.ProgressCreated] {
		return t.session.AddProgress(ctx, req.Subject, req.MinutesStudied, req.Notes)
	}, func(res Result[models.ProgressCreated]) {
		if res.Error != nil {
			t.logger.Warnf("не удалось добавить запись: %v", res.Error)
			t.showError(DescribeError(OpProgress, res.Error))

			return
		}

		t.entries = append(t.entries, res.Data.Entry)
		t.renderEntries()
	})
}

func (t *TUI) renderEntries() {
	table := t.entryTable
	table.Clear()

	for col, title := range []string{"Предмет", "Заметки", "Минуты", "Дата"} {
		table.SetCell(0, col, tview.NewTableCell(title).SetTextColor(tcell.ColorYellow).SetSelectable(false))
	}

	for i, entry := range t.entries {
		row := i + 1
		table.SetCell(row, subjectColumn, tview.NewTableCell(tview.Escape(entry.Subject)))
		table.SetCell(row, notesColumn, tview.NewTableCell(tview.Escape(orDash(entry.Notes))).SetExpansion(1))
		table.SetCell(row, minutesColumn, tview.NewTableCell(strconv.Itoa(entry.MinutesStudied)).SetAlign(tview.AlignRight))
		table.SetCell(row, dateColumn, tview.NewTableCell(formatEntryTime(entry)))
	}

	t.chartView.SetText(RenderChart(t.entries, chartWidth, chartHeight))
}

// progressRequest собирает и проверяет запрос из полей формы
func progressRequest(subject, minutes, notes string) (models.ProgressRequest, error) {
	value, err := strconv.Atoi(strings.TrimSpace(minutes))
	if err != nil {
		return models.ProgressRequest{}, fmt.Errorf("%w: минуты должны быть целым числом", models.ErrValidation)
	}

	req := models.ProgressRequest{
		Subject:        strings.TrimSpace(subject),
		MinutesStudied: value,
		Notes:          strings.TrimSpace(notes),
	}

	if validateErr := req.Validate(); validateErr != nil {
		return models.ProgressRequest{}, validateErr
	}

	return req, nil
}

func formatEntryTime(entry models.ProgressEntry) string {
	if ts, ok := entry.Timestamp(); ok {
		return ts.Local().Format("2006-01-02 15:04")
	}

	if entry.Date != "" {
		return entry.Date
	}

	return orDash(entry.CreatedAt)
}

func orDash(s string) string {
	if s == "" {
		return emptyNotes
	}

	return s
}
