package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"consent-backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// ResolveDSN picks the storage driver and builds its DSN from the
// environment. DATABASE_URL wins when set; otherwise the discrete DB_* vars
// are used. Returns driver name ("mysql" or "postgres") and the DSN.
func ResolveDSN() (string, string, error) {
	driver := strings.ToLower(envOrDefault("DB_DRIVER", "mysql"))

	raw := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("MYSQL_URL"))
	}

	if raw != "" {
		switch {
		case strings.HasPrefix(raw, "mysql://"):
			dsn, err := mysqlDSNFromURL(raw)
			return "mysql", dsn, err
		case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
			// pgx accepts the URL form directly.
			return "postgres", raw, nil
		default:
			return driver, raw, nil
		}
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	dbName := envOrDefault("DB_NAME", "consent_db")

	switch driver {
	case "postgres":
		port := envOrDefault("DB_PORT", "5432")
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			host, user, pass, dbName, port, envOrDefault("DB_SSLMODE", "disable"),
		)
		return "postgres", dsn, nil
	case "mysql":
		port := envOrDefault("DB_PORT", "3306")
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			user, pass, host, port, dbName,
		)
		return "mysql", dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// StorageDriver reports the driver the open connection uses, for /status.
func StorageDriver() string {
	if DB == nil {
		return "unknown"
	}
	return DB.Dialector.Name()
}

func ConnectDatabase() error {
	driver, dsn, err := ResolveDSN()
	if err != nil {
		return err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		dialector = mysql.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Subject{},
		&models.Domain{},
		&models.ConsentPolicy{},
		&models.ConsentPurpose{},
		&models.Consent{},
		&models.ConsentPurposeJunction{},
		&models.ConsentRecord{},
		&models.ConsentWithdrawal{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
