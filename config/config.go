package config

import (
	"time"
)

// Config is shared by every pipeline stage; each stage reads the sections it needs.
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	Registrar RegistrarConfig `yaml:"registrar"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Output    OutputConfig    `yaml:"output"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
}

type CatalogConfig struct {
	BaseUrl     string        `yaml:"base_url"    env:"CATALOG_BASE_URL"    env-default:"https://catalogs.northwestern.edu"`
	Timeout     time.Duration `yaml:"timeout"     env:"CATALOG_TIMEOUT"     env-default:"30s"`
	Concurrency int           `yaml:"concurrency" env:"CATALOG_CONCURRENCY" env-default:"8"`
}

type RegistrarConfig struct {
	CsvPath      string `yaml:"csv_path"      env:"REGISTRAR_CSV_PATH"      env-default:"RO_COURSE_INFO_PLAN_NU.csv"`
	StartId      int    `yaml:"start_id"      env:"REGISTRAR_START_ID"      env-default:"119"`
	DedupDistros bool   `yaml:"dedup_distros" env:"REGISTRAR_DEDUP_DISTROS" env-default:"false"`
}

type ScheduleConfig struct {
	FeedDir    string `yaml:"feed_dir"    env:"SCHEDULE_FEED_DIR"    env-default:"."`
	OutputPath string `yaml:"output_path" env:"SCHEDULE_OUTPUT_PATH" env-default:"data.json"`
}

// OutputConfig names the dataset files handed from one stage to the next.
type OutputConfig struct {
	CatalogPath string   `yaml:"catalog_path" env:"OUTPUT_CATALOG_PATH" env-default:"courses.json"`
	ResultPath  string   `yaml:"result_path"  env:"OUTPUT_RESULT_PATH"  env-default:"result.json"`
	DetailsPath string   `yaml:"details_path" env:"OUTPUT_DETAILS_PATH" env-default:"result2.json"`
	Palette     []string `yaml:"palette"      env:"OUTPUT_PALETTE"      env-default:"red,orange,amber,yellow,lime,green,emerald,teal,cyan,sky,blue,indigo,violet,purple,fuchsia,pink,rose" env-separator:","`
}

type DatabaseConfig struct {
	ConnectionString string `yaml:"connection_string" env:"DATABASE_CONNECTION_STRING"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
