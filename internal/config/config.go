package config

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mercatohq/marketd/internal/core/application"
	"github.com/mercatohq/marketd/internal/core/domain"
	"github.com/mercatohq/marketd/internal/core/ports"
	"github.com/mercatohq/marketd/internal/infrastructure/db"
	inmemoryregistry "github.com/mercatohq/marketd/internal/infrastructure/registry/inmemory"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	supportedEventDbs = supportedType{
		"watermill": {},
	}
	supportedDbs = supportedType{
		"badger": {},
		"sqlite": {},
	}
	supportedRegistries = supportedType{
		"inmemory": {},
	}
)

type Config struct {
	Datadir  string
	Port     uint32
	LogLevel int

	DbType      string
	EventDbType string
	DbDir       string

	RegistryType    string
	RegistryAddress string
	MarketAddress   string
	Owner           string
	PlatformFeeRate *big.Int

	repo            ports.RepoManager
	registryManager *application.RegistryManager
	svc             application.MarketService
	adminSvc        application.AdminService
}

func (c *Config) String() string {
	json, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("error while marshalling config JSON: %s", err)
	}
	return string(json)
}

var (
	defaultDatadir         = defaultAppDataDir()
	DefaultPort            = 7480
	defaultDbType          = "badger"
	defaultEventDbType     = "watermill"
	defaultRegistryType    = "inmemory"
	defaultLogLevel        = 4
	defaultPlatformFeeRate = "0"
)

// env returns a list of strings prefixed with `MARKETD_`.
// This is used as a syntax sugar for defining env vars.
func env(values ...string) []string {
	envs := make([]string, len(values))

	for i, value := range values {
		envs[i] = fmt.Sprintf("MARKETD_%s", value)
	}

	return envs
}

var (
	Datadir = &cli.StringFlag{
		Usage: "Directory to store data",
		Name:  "datadir", EnvVars: env("DATADIR"),
		Value: defaultDatadir,
	}

	Port = &cli.UintFlag{
		Usage: "Port to listen on",
		Name:  "port", EnvVars: env("PORT"),
		Value: uint(DefaultPort),
	}

	LogLevel = &cli.IntFlag{
		Usage: "Logging level (0-6, where 6 is trace)",
		Name:  "log-level", EnvVars: env("LOG_LEVEL"),
		Value: defaultLogLevel,
	}

	DbType = &cli.StringFlag{
		Usage: "Database type (badger, sqlite)",
		Name:  "db-type", EnvVars: env("DB_TYPE"),
		Value: defaultDbType,
	}

	EventDbType = &cli.StringFlag{
		Usage: "Event database type (watermill)",
		Name:  "event-db-type", EnvVars: env("EVENT_DB_TYPE"),
		Value: defaultEventDbType,
	}

	RegistryType = &cli.StringFlag{
		Usage: "Asset registry type (inmemory)",
		Name:  "registry-type", EnvVars: env("REGISTRY_TYPE"),
		Value: defaultRegistryType,
	}

	RegistryAddress = &cli.StringFlag{
		Usage: "Address of the asset registry to settle against",
		Name:  "registry-address", EnvVars: env("REGISTRY_ADDRESS"),
	}

	MarketAddress = &cli.StringFlag{
		Usage: "Address of this marketplace, the one sellers approve as operator",
		Name:  "market-address", EnvVars: env("MARKET_ADDRESS"),
	}

	Owner = &cli.StringFlag{
		Usage: "Address allowed to run admin operations",
		Name:  "owner", EnvVars: env("OWNER"),
	}

	PlatformFeeRate = &cli.StringFlag{
		Usage: "Platform fee rate in scaled percentage (1% = 10^18)",
		Name:  "platform-fee-rate", EnvVars: env("PLATFORM_FEE_RATE"),
		Value: defaultPlatformFeeRate,
	}
)

var Flags = []cli.Flag{
	Datadir,
	Port,
	LogLevel,
	DbType,
	EventDbType,
	RegistryType,
	RegistryAddress,
	MarketAddress,
	Owner,
	PlatformFeeRate,
}

func LoadConfig(c *cli.Context) (*Config, error) {
	if err := initDatadir(c); err != nil {
		return nil, fmt.Errorf("failed to create datadir: %s", err)
	}

	dbPath := filepath.Join(c.String(Datadir.Name), "db")

	feeRate, ok := new(big.Int).SetString(c.String(PlatformFeeRate.Name), 10)
	if !ok || feeRate.Sign() < 0 {
		return nil, fmt.Errorf(
			"invalid platform fee rate %q", c.String(PlatformFeeRate.Name),
		)
	}

	return &Config{
		Datadir:         c.String(Datadir.Name),
		Port:            uint32(c.Uint(Port.Name)),
		LogLevel:        c.Int(LogLevel.Name),
		DbType:          c.String(DbType.Name),
		EventDbType:     c.String(EventDbType.Name),
		DbDir:           dbPath,
		RegistryType:    c.String(RegistryType.Name),
		RegistryAddress: c.String(RegistryAddress.Name),
		MarketAddress:   c.String(MarketAddress.Name),
		Owner:           c.String(Owner.Name),
		PlatformFeeRate: feeRate,
	}, nil
}

func initDatadir(c *cli.Context) error {
	datadir := c.String(Datadir.Name)
	return makeDirectoryIfNotExists(datadir)
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0o755)
	}
	return nil
}

func (c *Config) Validate() error {
	if !supportedEventDbs.supports(c.EventDbType) {
		return fmt.Errorf(
			"event db type not supported, please select one of: %s",
			supportedEventDbs,
		)
	}
	if !supportedDbs.supports(c.DbType) {
		return fmt.Errorf("db type not supported, please select one of: %s", supportedDbs)
	}
	if !supportedRegistries.supports(c.RegistryType) {
		return fmt.Errorf(
			"registry type not supported, please select one of: %s",
			supportedRegistries,
		)
	}
	if c.Owner == "" {
		return fmt.Errorf("missing owner address")
	}
	if c.MarketAddress == "" {
		return fmt.Errorf("missing market address")
	}

	if err := c.repoManager(); err != nil {
		return err
	}
	if err := c.registryService(); err != nil {
		return err
	}
	if err := c.seedSettings(); err != nil {
		return err
	}
	if err := c.marketService(); err != nil {
		return err
	}
	return c.adminService()
}

func (c *Config) MarketService() application.MarketService {
	return c.svc
}

func (c *Config) AdminService() application.AdminService {
	return c.adminSvc
}

func (c *Config) RepoManager() ports.RepoManager {
	return c.repo
}

func (c *Config) repoManager() error {
	var dataStoreConfig []interface{}
	logger := log.New()

	switch c.DbType {
	case "badger":
		dataStoreConfig = []interface{}{c.DbDir, logger}
	case "sqlite":
		dataStoreConfig = []interface{}{c.DbDir}
	default:
		return fmt.Errorf("unknown db type")
	}

	svc, err := db.NewService(db.ServiceConfig{
		EventStoreType:  c.EventDbType,
		DataStoreType:   c.DbType,
		DataStoreConfig: dataStoreConfig,
	})
	if err != nil {
		return err
	}

	c.repo = svc
	return nil
}

func (c *Config) registryService() error {
	var factory ports.AssetRegistryFactory
	switch c.RegistryType {
	case "inmemory":
		factory = inmemoryregistry.Factory(inmemoryregistry.NewAssetRegistry())
	default:
		return fmt.Errorf("unknown registry type")
	}

	manager, err := application.NewRegistryManager(factory, c.RegistryAddress)
	if err != nil {
		return err
	}

	c.registryManager = manager
	return nil
}

// seedSettings persists the initial marketplace settings on first start.
// Later starts keep the persisted record: admin operations own it from then
// on.
func (c *Config) seedSettings() error {
	ctx := context.Background()
	settings, err := c.repo.Settings().Get(ctx)
	if err != nil {
		return err
	}
	if settings != nil {
		return nil
	}

	seeded := domain.NewSettings(
		c.Owner, c.RegistryAddress, c.MarketAddress, c.PlatformFeeRate,
	)
	seeded.UpdatedAt = time.Now()
	if err := c.repo.Settings().Upsert(ctx, *seeded); err != nil {
		return err
	}
	log.WithField("owner", c.Owner).Debug("seeded marketplace settings")
	return nil
}

func (c *Config) marketService() error {
	svc, err := application.NewMarketService(c.repo, c.registryManager)
	if err != nil {
		return err
	}

	c.svc = svc
	return nil
}

func (c *Config) adminService() error {
	adminSvc, err := application.NewAdminService(c.svc)
	if err != nil {
		return err
	}

	c.adminSvc = adminSvc
	return nil
}

func defaultAppDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".marketd"
	}
	return filepath.Join(home, ".marketd")
}

type supportedType map[string]struct{}

func (t supportedType) String() string {
	types := make([]string, 0, len(t))
	for tt := range t {
		types = append(types, tt)
	}
	return strings.Join(types, " | ")
}

func (t supportedType) supports(typeStr string) bool {
	_, ok := t[typeStr]
	return ok
}
