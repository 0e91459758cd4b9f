// Command provision creates or updates profiles from the command line. It is
// safe to re-run: provisioning the same email twice leaves one profile with
// the latest secret, name, and role.
//
// Single account:
//
//	provision -email atendente@farmapay.com -password 'Farma@2025!' -name 'Atendente Padrão' -role ATTENDANT
//
// Bulk seeding from a JSON file ([{"email":..., "password":..., "name":..., "role":...}, ...]):
//
//	provision -file seed.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/farmapay/admin-api/internal/core/domain"
	"github.com/farmapay/admin-api/internal/core/ports"
	"github.com/farmapay/admin-api/internal/core/service"
	"github.com/farmapay/admin-api/internal/infrastructure/config"
	mongodb "github.com/farmapay/admin-api/internal/infrastructure/db/mongo"
	"github.com/farmapay/admin-api/pkg/logger"
)

type seedEntry struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func main() {
	var (
		email    = flag.String("email", "", "account email (required unless -file is given)")
		password = flag.String("password", "", "account secret (required unless -file is given)")
		name     = flag.String("name", "", "display name (optional)")
		role     = flag.String("role", "", "role: ADMIN, MANAGER, SALES, ATTENDANT, INVESTOR (defaults to DEFAULT_ROLE)")
		file     = flag.String("file", "", "JSON seed file for bulk provisioning")
	)
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if *file == "" && (*email == "" || *password == "") {
		flag.Usage()
		os.Exit(2)
	}

	defaultRole, err := domain.ParseRole(cfg.DefaultRole)
	if err != nil {
		log.Fatal().Err(err).Str("default_role", cfg.DefaultRole).Msg("invalid DEFAULT_ROLE")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	profileRepo := mongodb.NewProfileRepository(db)
	if err := profileRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure profile indexes")
	}

	hasher := service.NewCredentialHasher(cfg.BcryptCost)
	provisioner := service.NewProvisionService(profileRepo, hasher, nil, defaultRole, log)

	inputs := []ports.ProvisionInput{{
		Email:  *email,
		Secret: *password,
		Name:   *name,
		Role:   *role,
	}}
	if *file != "" {
		inputs, err = readSeedFile(*file)
		if err != nil {
			log.Fatal().Err(err).Str("file", *file).Msg("failed to read seed file")
		}
	}

	failed := 0
	for _, input := range inputs {
		profile, err := provisioner.Provision(ctx, input)
		if err != nil {
			log.Error().Err(err).Str("email", input.Email).Msg("provisioning failed")
			failed++
			continue
		}
		// Identifier and role only; the secret and hash are never emitted.
		log.Info().
			Str("profile_id", profile.ID).
			Str("email", profile.Email).
			Str("role", string(profile.Role)).
			Msg("profile provisioned")
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func readSeedFile(path string) ([]ports.ProvisionInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []seedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	inputs := make([]ports.ProvisionInput, 0, len(entries))
	for _, e := range entries {
		inputs = append(inputs, ports.ProvisionInput{
			Email:  e.Email,
			Secret: e.Password,
			Name:   e.Name,
			Role:   e.Role,
		})
	}
	return inputs, nil
}
