package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/certificate"
	certificatePostgres "github.com/frahmantamala/ld-portal/internal/certificate/postgres"
	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
	"github.com/frahmantamala/ld-portal/internal/gamification"
	gamificationPostgres "github.com/frahmantamala/ld-portal/internal/gamification/postgres"
	"github.com/frahmantamala/ld-portal/internal/user"
	userPostgres "github.com/frahmantamala/ld-portal/internal/user/postgres"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	seedAdminEmail    string
	seedAdminPassword string
)

var defaultDepartments = []string{"Engineering", "Product", "People"}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with reference data",
	Long:  `Seed departments, the badge catalog and a super admin account. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		lg := setupLogger(cfg)

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gdb, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if err := seed(cmd.Context(), gdb, cfg.Security.BCryptCost, lg, seedAdminEmail, seedAdminPassword); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		lg.Info("seed completed")
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedAdminEmail, "admin-email", "admin@ldportal.local", "Email of the seeded super admin")
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "changeme123", "Password of the seeded super admin")
}

func seed(ctx context.Context, db *gorm.DB, bcryptCost int, lg *slog.Logger, adminEmail, adminPassword string) error {
	users := user.NewService(userPostgres.NewUserRepository(db), bcryptCost, lg)

	for _, name := range defaultDepartments {
		_, err := users.CreateDepartment(ctx, user.CreateDepartmentDTO{Name: name})
		switch {
		case err == nil:
			fmt.Println("Seeded department:", name)
		case errors.Is(err, internal.ErrDepartmentExists):
			fmt.Println("department already exists:", name)
		default:
			return fmt.Errorf("department %s: %w", name, err)
		}
	}

	_, err := users.CreateUser(ctx, user.CreateUserDTO{
		Email:    adminEmail,
		FullName: "Portal Administrator",
		Password: adminPassword,
		Role:     string(coreuser.RoleSuperAdmin),
	})
	switch {
	case err == nil:
		fmt.Println("Seeded super admin:", adminEmail)
	case errors.Is(err, internal.ErrEmailTaken):
		fmt.Println("super admin already exists:", adminEmail)
	default:
		return fmt.Errorf("super admin: %w", err)
	}

	certificates := certificate.NewService(certificatePostgres.NewCertificateRepository(db), lg)
	badges := gamification.NewBadgeService(gamificationPostgres.NewBadgeRepository(db), certificates, lg)
	catalog, err := badges.EnsureSeeded(ctx)
	if err != nil {
		return fmt.Errorf("badges: %w", err)
	}
	for _, b := range catalog {
		fmt.Printf("Badge %s at %d hours\n", b.Name, b.ThresholdHours)
	}

	return nil
}
