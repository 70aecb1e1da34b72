package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/category"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/variance"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Address  string   `koanf:"address"`
	Database Database `koanf:"db"`
	Alerts   Alerts   `koanf:"alerts"`
	// Categories and Subgroups fall back to the built-in chart of accounts
	// when left empty.
	Categories []Category          `koanf:"categories"`
	Subgroups  map[string][]string `koanf:"subgroups"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Alerts struct {
	VariancePercent float64 `koanf:"variancepercent"`
	VarianceAmount  float64 `koanf:"varianceamount"`
	DangerPercent   float64 `koanf:"dangerpercent"`
}

type Category struct {
	Id       string `koanf:"id"`
	Name     string `koanf:"name"`
	Parent   string `koanf:"parent"`
	Negative bool   `koanf:"negative"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	thresholds := variance.DefaultAlertThresholds()
	err := k.Load(structs.Provider(Application{
		Address: ":8181",
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "budget",
			Pass:   "",
			Name:   "budget",
			Schema: "budget",
		},
		Alerts: Alerts{
			VariancePercent: thresholds.VariancePercent,
			VarianceAmount:  thresholds.VarianceAmount,
			DangerPercent:   thresholds.DangerPercent,
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
		Prefix: "BUDGET_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "BUDGET_")), "_", ".")
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

// Registry builds the category registry, validating the subgroup taxonomy
// against it.
func (a Application) Registry() (*category.Registry, error) {
	categories := category.DefaultCategories()
	if len(a.Categories) > 0 {
		categories = make([]category.Category, 0, len(a.Categories))
		for _, c := range a.Categories {
			categories = append(categories, category.Category{
				Id:         c.Id,
				Name:       c.Name,
				Parent:     category.Parent(c.Parent),
				IsNegative: c.Negative,
			})
		}
	}

	members := category.DefaultSubgroups()
	if len(a.Subgroups) > 0 {
		members = make(map[category.Subgroup][]string, len(a.Subgroups))
		for subgroup, ids := range a.Subgroups {
			members[category.Subgroup(subgroup)] = ids
		}
	}
	taxonomy, err := category.NewTaxonomy(members)
	if err != nil {
		return nil, fmt.Errorf("failed to load subgroups: %w", err)
	}

	registry, err := category.NewRegistry(categories, taxonomy)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	log.Infof("Loaded %d budget categories", len(registry.All()))
	return registry, nil
}

func (a Alerts) Thresholds() variance.AlertThresholds {
	return variance.AlertThresholds{
		VariancePercent: a.VariancePercent,
		VarianceAmount:  a.VarianceAmount,
		DangerPercent:   a.DangerPercent,
	}
}
