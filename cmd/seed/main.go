package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/roster-backend/internal/shifts"
	"github.com/angelmondragon/roster-backend/internal/timeslots"
	"github.com/angelmondragon/roster-backend/internal/users"
	"github.com/angelmondragon/roster-backend/pkg/config"
	"github.com/angelmondragon/roster-backend/pkg/db"
	"github.com/angelmondragon/roster-backend/pkg/enums"
	"github.com/angelmondragon/roster-backend/pkg/logger"
	"github.com/angelmondragon/roster-backend/pkg/types"
)

type seedTimeslot struct {
	name  string
	start string
	end   string
}

type seedUser struct {
	email     string
	firstName string
	lastName  string
	role      enums.UserRole
}

var seedTimeslots = []seedTimeslot{
	{name: "Morning", start: "06:00", end: "14:00"},
	{name: "Afternoon", start: "14:00", end: "22:00"},
	{name: "Night", start: "22:00", end: "23:59"},
}

var seedUsers = []seedUser{
	{email: "admin@roster.local", firstName: "Riley", lastName: "Admin", role: enums.UserRoleAdmin},
	{email: "casey@roster.local", firstName: "Casey", lastName: "Reed", role: enums.UserRoleUser},
	{email: "jordan@roster.local", firstName: "Jordan", lastName: "Lane", role: enums.UserRoleUser},
	{email: "sam@roster.local", firstName: "Sam", lastName: "Okafor", role: enums.UserRoleUser},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	if cfg.App.IsProd() {
		logg.Error(ctx, "refusing to seed a prod environment", nil)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	timeslotService, err := timeslots.NewService(timeslots.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create timeslot service", err)
		os.Exit(1)
	}
	userService, err := users.NewService(users.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create user service", err)
		os.Exit(1)
	}
	shiftService, err := shifts.NewService(shifts.NewRepository(dbClient.DB()), logg, nil)
	if err != nil {
		logg.Error(ctx, "failed to create shift service", err)
		os.Exit(1)
	}

	for _, u := range seedUsers {
		created, err := userService.Create(ctx, users.CreateUserInput{
			Email:     u.email,
			FirstName: u.firstName,
			LastName:  u.lastName,
			Role:      u.role,
		})
		if err != nil {
			// duplicate emails just mean the seed already ran
			logg.Warn(logg.WithField(ctx, "email", u.email), "skipping user")
			continue
		}
		logg.Info(logg.WithUserID(ctx, created.ID.String()), "seeded user")
	}

	today := types.DateOf(time.Now())
	for _, ts := range seedTimeslots {
		start, err := types.ParseTimeOfDay(ts.start)
		if err != nil {
			logg.Error(ctx, "bad seed timeslot", err)
			os.Exit(1)
		}
		end, err := types.ParseTimeOfDay(ts.end)
		if err != nil {
			logg.Error(ctx, "bad seed timeslot", err)
			os.Exit(1)
		}

		created, err := timeslotService.Create(ctx, timeslots.CreateTimeslotInput{
			Name:      ts.name,
			StartTime: start,
			EndTime:   end,
		})
		if err != nil {
			logg.Error(ctx, "failed to seed timeslot", err)
			os.Exit(1)
		}

		dates := make([]types.Date, 0, 7)
		for day := 0; day < 7; day++ {
			dates = append(dates, today.AddDays(day))
		}
		series, err := shiftService.Repeat(ctx, shifts.RepeatShiftInput{
			TimeslotID:    created.ID,
			Dates:         dates,
			RequiredStaff: 2,
		})
		if err != nil {
			logg.Error(ctx, "failed to seed shifts", err)
			os.Exit(1)
		}
		logg.Info(logg.WithFields(ctx, map[string]any{
			"timeslot": created.Name,
			"shifts":   len(series),
		}), "seeded timeslot")
	}

	logg.Info(ctx, "seed complete")
}
