package main

import (
	"os"

	"github.com/ougirez/yhdash/internal/domain"
	"github.com/ougirez/yhdash/internal/domain/dto"
	"github.com/ougirez/yhdash/internal/pkg/constants"
	"github.com/ougirez/yhdash/internal/pkg/logger"
	"github.com/ougirez/yhdash/internal/pkg/report"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var (
		q    dto.FilterQuery
		year int
		n    int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print KPIs and top lists to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, svc, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer logger.Sync()

			out := cmd.OutOrStdout()
			filters := q.ToFilters()
			report.KPIs(out, svc.KPIs(ctx, filters))

			sections := []struct {
				title string
				view  func() (*domain.View, error)
			}{
				{"Top organizers by approved seats", func() (*domain.View, error) { return svc.TopOrganizers(ctx, filters, year, n) }},
				{"Top municipalities by approved seats", func() (*domain.View, error) { return svc.TopMunicipalities(ctx, filters, year, n) }},
				{"Top schools by applications", func() (*domain.View, error) { return svc.TopSchoolsByApplications(ctx, filters, n) }},
				{"Requested seats by education area", func() (*domain.View, error) { return svc.Applications(ctx, filters, year) }},
				{"Requested seats by region", func() (*domain.View, error) { return svc.SeatsByRegion(ctx, filters, year) }},
			}
			for _, s := range sections {
				v, err := s.view()
				if err != nil {
					return err
				}
				report.View(out, s.title, v)
			}
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.Flags().StringVar(&q.Area, "area", "", "education area filter")
	cmd.Flags().StringVar(&q.Municipality, "municipality", "", "municipality filter")
	cmd.Flags().StringVar(&q.Organizer, "organizer", "", "organizer filter")
	cmd.Flags().StringVar(&q.EducationName, "education-name", "", "education name filter")
	cmd.Flags().IntVar(&year, "year", 0, "year (default: latest)")
	cmd.Flags().IntVarP(&n, "top", "n", constants.DefaultTopN, "rows per top list")

	return cmd
}
