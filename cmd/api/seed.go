package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/talentrail/internal/seed"
)

func newSeedCmd() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample guides, trips, skills and candidates",
		Long: `Populate an empty database with sample data. Nothing is written when
skills already exist. When ADMIN_USERNAME and ADMIN_PASSWORD are set, an
account with the ADMIN role is ensured as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withApp(ctx, func(a *app) error {
				if migrateFirst {
					if err := migrateUp(ctx, a, cmd.OutOrStdout()); err != nil {
						return err
					}
				}
				svc := a.buildServices(ctx)
				defer svc.closeFn()

				p := seed.NewPopulator(svc.guides, svc.trips, svc.skills, svc.candidates, svc.auth, a.logger)
				res, err := p.Run(ctx, a.cfg.AdminUsername, a.cfg.AdminPassword)
				if err != nil {
					return err
				}
				if res.Skipped {
					fmt.Fprintln(cmd.OutOrStdout(), "database already populated; nothing to do")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "inserted %d trips, %d skills, %d candidates\n",
					len(res.TripIDs), len(res.SkillIDs), len(res.CandidateIDs))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before seeding")
	return cmd
}
