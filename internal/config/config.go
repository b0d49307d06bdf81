package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Frontend Frontend `koanf:"frontend"`
	Planning Planning `koanf:"planning"`
	Google   Google   `koanf:"google"`
	Database Database `koanf:"db"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

// Planning holds company-independent defaults of the allocation core.
type Planning struct {
	// DefaultWeeklyCapacity is used when neither the member nor the company
	// defines a weekly capacity.
	DefaultWeeklyCapacity float64 `koanf:"defaultweeklycapacity"`
	// MaxAllocationPercent is the ceiling for a member's total weekly
	// commitment, expressed as a percentage of capacity.
	MaxAllocationPercent float64 `koanf:"maxallocationpercent"`
	// ScheduleCacheTTLSeconds controls how long aggregated breakdowns are
	// served from the read-through cache.
	ScheduleCacheTTLSeconds int `koanf:"schedulecachettlseconds"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
	// HolidayCalendarId is the calendar office holidays are imported from.
	HolidayCalendarId string `koanf:"holidaycalendarid"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Frontend: Frontend{
			Enabled: true,
		},
		Planning: Planning{
			DefaultWeeklyCapacity:   40,
			MaxAllocationPercent:    200,
			ScheduleCacheTTLSeconds: 300,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "staffpad",
			Pass:   "",
			Name:   "staffpad",
			Schema: "staffpad",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "STAFFPAD_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "STAFFPAD_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
