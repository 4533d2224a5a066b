package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	StoreMySQL  = "mysql"
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Env struct {
	AppAddr     string   `yaml:"app_addr"`
	GinMode     string   `yaml:"gin_mode"`
	StoreDriver string   `yaml:"store_driver"`
	MySQLDSN    string   `yaml:"mysql_dsn"`
	MongoURI    string   `yaml:"mongo_uri"`
	MongoDB     string   `yaml:"mongo_db"`
	CORSOrigins []string `yaml:"cors_allowed_origins"`
	ConfigFile  string   `yaml:"-"`
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	driver := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER")))
	if driver == "" {
		driver = StoreMySQL
	}

	dsn := strings.TrimSpace(os.Getenv("MYSQL_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/trip_planner?parseTime=true&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	mongoURI := strings.TrimSpace(os.Getenv("MONGO_URI"))
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDB := strings.TrimSpace(os.Getenv("MONGO_DB"))
	if mongoDB == "" {
		mongoDB = "trip_planner"
	}

	origins := []string{"*"}
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		origins = splitList(raw)
	}

	return Env{
		AppAddr:     appAddr,
		GinMode:     strings.TrimSpace(os.Getenv("GIN_MODE")),
		StoreDriver: driver,
		MySQLDSN:    dsn,
		MongoURI:    mongoURI,
		MongoDB:     mongoDB,
		CORSOrigins: origins,
		ConfigFile:  strings.TrimSpace(os.Getenv("CONFIG_FILE")),
	}
}

// Load reads the environment and, when a config file is named (explicitly or via
// CONFIG_FILE), overlays the file's non-empty keys on top.
func Load(path string) (Env, error) {
	env := LoadEnv()
	if strings.TrimSpace(path) != "" {
		env.ConfigFile = strings.TrimSpace(path)
	}
	if env.ConfigFile == "" {
		return env, nil
	}
	raw, err := os.ReadFile(env.ConfigFile)
	if err != nil {
		return env, fmt.Errorf("read config %s: %w", env.ConfigFile, err)
	}
	return env.overlayYAML(raw)
}

func (e Env) overlayYAML(raw []byte) (Env, error) {
	var file Env
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return e, fmt.Errorf("parse config %s: %w", e.ConfigFile, err)
	}
	if file.AppAddr != "" {
		e.AppAddr = file.AppAddr
	}
	if file.GinMode != "" {
		e.GinMode = file.GinMode
	}
	if file.StoreDriver != "" {
		e.StoreDriver = strings.ToLower(file.StoreDriver)
	}
	if file.MySQLDSN != "" {
		e.MySQLDSN = file.MySQLDSN
	}
	if file.MongoURI != "" {
		e.MongoURI = file.MongoURI
	}
	if file.MongoDB != "" {
		e.MongoDB = file.MongoDB
	}
	if len(file.CORSOrigins) > 0 {
		e.CORSOrigins = file.CORSOrigins
	}
	return e, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
