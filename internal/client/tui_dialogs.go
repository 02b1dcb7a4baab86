package client

import (
	"github.com/rivo/tview"
)

func (t *TUI) showError(message string) {
	t.showDialog("Ошибка", message, "OK", nil)
}

func (t *TUI) showDialog(title, message, buttonText string, callback func()) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{buttonText}).
		SetDoneFunc(func(buttonIndex int, _ string) {
			t.pages.RemovePage(pageDialog)

			if buttonIndex == 0 && callback != nil {
				callback()
			}
		})

	if title != "" {
		modal.SetTitle(title).SetBorder(true)
	}

	t.pages.AddPage(pageDialog, modal, true, true)
}
