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
	Addr     string   `koanf:"addr"`
	Frontend Frontend `koanf:"frontend"`
	Billing  Billing  `koanf:"billing"`
	Import   Import   `koanf:"import"`
	Database Database `koanf:"db"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

// Billing carries the budget classification thresholds as fractions of the
// configured budget. Spend at or below UnderBudget classifies as
// under_budget, at or below OnTrack as on_track, at or below 1.0 as
// over_budget, and anything above as budget_exceeded.
type Billing struct {
	UnderBudgetThreshold float64 `koanf:"underbudgetthreshold"`
	OnTrackThreshold     float64 `koanf:"ontrackthreshold"`
}

type Import struct {
	// MaxUploadBytes limits the size of a single import file upload.
	MaxUploadBytes int64 `koanf:"maxuploadbytes"`
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
		Addr: ":8181",
		Frontend: Frontend{
			Enabled: true,
		},
		Billing: Billing{
			UnderBudgetThreshold: 0.75,
			OnTrackThreshold:     0.90,
		},
		Import: Import{
			MaxUploadBytes: 10 << 20,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "urenlog",
			Pass:   "",
			Name:   "urenlog",
			Schema: "urenlog",
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
		Prefix: "URENLOG_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "URENLOG_")), "_", ".")
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
