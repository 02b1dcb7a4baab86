package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/parsa-mehek/LinkingLink-client/internal/client"
	"github.com/parsa-mehek/LinkingLink-client/internal/models"
)

const (
	defaultSubject = "General"
	defaultMinutes = 30
	chartWidth     = 60
	chartHeight    = 10
)

func newProgressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Журнал учебного прогресса",
	}

	cmd.AddCommand(newProgressListCmd(a), newProgressAddCmd(a))

	return cmd
}

func newProgressListCmd(a *app) *cobra.Command {
	var withChart bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Показать записи",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := a.session.ListProgress(cmd.Context())
			if res.Error != nil {
				return a.report(client.OpProgress, res.Error)
			}

			items := res.Data.Items
			if len(items) == 0 {
				fmt.Fprintln(a.out, "Записей пока нет")

				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tПРЕДМЕТ\tМИНУТЫ\tДАТА\tЗАМЕТКИ")
			for _, e := range items {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", notesOrDash(e.ID.String()), e.Subject, e.MinutesStudied, entryDate(e), notesOrDash(e.Notes))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if withChart {
				fmt.Fprintln(a.out)
				fmt.Fprintln(a.out, client.RenderChart(items, chartWidth, chartHeight))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&withChart, "chart", false, "нарисовать график минут по датам")

	return cmd
}

func newProgressAddCmd(a *app) *cobra.Command {
	var req models.ProgressRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Добавить запись",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := req.Validate(); err != nil {
				return err
			}

			res := a.session.AddProgress(cmd.Context(), req.Subject, req.MinutesStudied, req.Notes)
			if res.Error != nil {
				return a.report(client.OpProgress, res.Error)
			}

			e := res.Data.Entry
			fmt.Fprintf(a.out, "Запись добавлена: #%s %s, %d мин.\n", e.ID, e.Subject, e.MinutesStudied)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Subject, "subject", defaultSubject, "предмет")
	flags.IntVar(&req.MinutesStudied, "minutes", defaultMinutes, "длительность занятия в минутах")
	flags.StringVar(&req.Notes, "notes", "", "заметки")

	return cmd
}

func entryDate(e models.ProgressEntry) string {
	if ts, ok := e.Timestamp(); ok {
		return ts.Format("2006-01-02")
	}

	return notesOrDash(e.Date)
}

func notesOrDash(s string) string {
	if s == "" {
		return "—"
	}

	return s
}
