package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/residuum/pkg/domain/model/config"
	"github.com/secmon-lab/residuum/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the register catalog configuration file
type AppConfig struct {
	Units []Unit `toml:"unit"`
	Risks []Risk `toml:"risk"`
}

// Unit represents a business unit entry
type Unit struct {
	Name string `toml:"name"`
}

// Validate checks if the Unit is valid
func (u *Unit) Validate() error {
	if u.Name == "" {
		return goerr.Wrap(ErrInvalidConfig, "unit name is required")
	}
	return nil
}

// Risk represents a catalog risk entry
type Risk struct {
	Name        string `toml:"name"`
	ControlType string `toml:"control_type"`
}

// Validate checks if the Risk is valid
func (r *Risk) Validate() error {
	if r.Name == "" {
		return goerr.Wrap(ErrInvalidConfig, "risk name is required")
	}
	if r.ControlType != "" {
		if _, err := types.ParseControlType(r.ControlType); err != nil {
			return goerr.Wrap(err, "invalid control type", goerr.V(RiskNameKey, r.Name))
		}
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	unitNames := make(map[string]bool)
	for _, unit := range a.Units {
		if err := unit.Validate(); err != nil {
			return err
		}
		if unitNames[unit.Name] {
			return goerr.Wrap(ErrDuplicateUnit, "duplicate unit in catalog", goerr.V(UnitNameKey, unit.Name))
		}
		unitNames[unit.Name] = true
	}

	riskNames := make(map[string]bool)
	for _, risk := range a.Risks {
		if err := risk.Validate(); err != nil {
			return err
		}
		if riskNames[risk.Name] {
			return goerr.Wrap(ErrDuplicateRisk, "duplicate risk in catalog", goerr.V(RiskNameKey, risk.Name))
		}
		riskNames[risk.Name] = true
	}

	return nil
}

// ToCatalog converts the configuration to the domain catalog
func (a *AppConfig) ToCatalog() *domainConfig.Catalog {
	catalog := &domainConfig.Catalog{}
	for _, unit := range a.Units {
		catalog.Units = append(catalog.Units, domainConfig.BusinessUnit{Name: unit.Name})
	}
	for _, risk := range a.Risks {
		catalog.Risks = append(catalog.Risks, domainConfig.CatalogRisk{
			Name:        risk.Name,
			ControlType: risk.ControlType,
		})
	}
	return catalog
}

// LoadAppConfig loads and validates a register catalog from a TOML file
func LoadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "catalog file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V(ConfigPathKey, path))
	}

	var cfg AppConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse catalog file", goerr.V(ConfigPathKey, path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid catalog file", goerr.V(ConfigPathKey, path))
	}

	return &cfg, nil
}

// Catalog holds the CLI flag for the register catalog path
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to the register catalog TOML file",
			Sources:     cli.EnvVars("RESIDUUM_CATALOG"),
			Destination: &c.path,
		},
	}
}

// Configure loads the catalog when a path is set; a missing flag is not an
// error, it just disables catalog validation.
func (c *Catalog) Configure() (*domainConfig.Catalog, error) {
	if c.path == "" {
		return nil, nil
	}

	cfg, err := LoadAppConfig(c.path)
	if err != nil {
		return nil, err
	}

	return cfg.ToCatalog(), nil
}
