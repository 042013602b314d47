package orm

import (
	"context"
	"database/sql"
	"strings"
	"time"

	goMysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var (
	ErrRecordNotFound = gorm.ErrRecordNotFound
	ErrDuplicatedKey  = gorm.ErrDuplicatedKey
)

const (
	mySQLDuplicateEntry     = 1062
	postgresUniqueViolation = "23505"
)

type postgresConfig struct {
	dns string
}

type mySQLConfig struct {
	dns string
}

type sqliteConfig struct {
	fileName string
}

type poolConfig struct {
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
}

type DB struct {
	gormClient *gorm.DB

	dbType dbType

	mySQLConfig    *mySQLConfig
	sqliteConfig   *sqliteConfig
	postgresConfig *postgresConfig
	poolConfig     *poolConfig
}

type (
	TX         = gorm.DB
	Expression = clause.Expression
)

type dbType int

const (
	dbTypeNoop dbType = iota
	dbTypeMySQL
	dbTypeSQLite
	dbTypePostgres
)

type Option func(*DB)

func UseMySQL(dns string) Option {
	return func(db *DB) {
		db.dbType = dbTypeMySQL
		db.mySQLConfig = &mySQLConfig{
			dns: dns,
		}
	}
}

func UsePostgres(dns string) Option {
	return func(db *DB) {
		db.dbType = dbTypePostgres
		db.postgresConfig = &postgresConfig{
			dns: dns,
		}
	}
}

func UseSQLite(fileName string) Option {
	return func(db *DB) {
		db.dbType = dbTypeSQLite
		db.sqliteConfig = &sqliteConfig{
			fileName: fileName,
		}
	}
}

// UseDriver picks the dialect by name: postgres, mysql or sqlite.
func UseDriver(driver, dns string) (Option, error) {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql":
		return UsePostgres(dns), nil
	case "mysql":
		return UseMySQL(dns), nil
	case "sqlite", "sqlite3":
		return UseSQLite(dns), nil
	}
	return nil, errors.Errorf("unsupported db driver: %s", driver)
}

func SetPool(maxOpenConns, maxIdleConns int, connMaxLifetime time.Duration) Option {
	return func(db *DB) {
		db.poolConfig = &poolConfig{
			maxOpenConns:    maxOpenConns,
			maxIdleConns:    maxIdleConns,
			connMaxLifetime: connMaxLifetime,
		}
	}
}

func UseNoop(db *DB) {
	db.dbType = dbTypeNoop
}

func CreateDB(useDB Option, options ...Option) (*DB, error) {
	var gormDB DB

	useDB(&gormDB)
	for _, option := range options {
		option(&gormDB)
	}

	if gormDB.dbType == dbTypeNoop {
		return &gormDB, nil
	}

	var dialector gorm.Dialector
	switch gormDB.dbType {
	case dbTypeMySQL:
		dialector = mysql.Open(gormDB.mySQLConfig.dns)
	case dbTypeSQLite:
		dialector = sqlite.Open(gormDB.sqliteConfig.fileName)
	case dbTypePostgres:
		dialector = postgres.Open(gormDB.postgresConfig.dns)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect db failed")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get core db failed")
	}
	if gormDB.dbType == dbTypeSQLite {
		// in-memory databases live per connection
		sqlDB.SetMaxOpenConns(1)
	} else if gormDB.poolConfig != nil {
		sqlDB.SetMaxOpenConns(gormDB.poolConfig.maxOpenConns)
		sqlDB.SetMaxIdleConns(gormDB.poolConfig.maxIdleConns)
		sqlDB.SetConnMaxLifetime(gormDB.poolConfig.connMaxLifetime)
	}
	if sqlDB.Ping() != nil {
		return nil, errors.New("ping core db failed")
	}

	gormDB.gormClient = db

	return &gormDB, nil
}

func (db *DB) WithContext(ctx context.Context) *TX {
	return db.gormClient.WithContext(ctx)
}

func (db *DB) AutoMigrate(dst ...interface{}) error {
	if err := db.gormClient.AutoMigrate(dst...); err != nil {
		return errors.Wrap(err, "auto migrate failed")
	}
	return nil
}

func (db *DB) Raw(sql string, values ...interface{}) *TX {
	return db.gormClient.Raw(sql, values...)
}

func (db *DB) Exec(sql string, values ...interface{}) *TX {
	return db.gormClient.Exec(sql, values...)
}

func (db *DB) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) (err error) {
	return db.gormClient.Transaction(fc, opts...)
}

func (db *DB) Model(value interface{}) *TX {
	return db.gormClient.Model(value)
}

func (db *DB) Where(query interface{}, args ...interface{}) *TX {
	return db.gormClient.Where(query, args...)
}

func (db *DB) Clauses(conds ...Expression) *TX {
	return db.gormClient.Clauses(conds...)
}

func (db *DB) Table(name string, args ...interface{}) *TX {
	return db.gormClient.Table(name, args...)
}

func (db *DB) Create(value interface{}) *TX {
	return db.gormClient.Create(value)
}

func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.gormClient.DB()
	if err != nil {
		return errors.Wrap(err, "get core db failed")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping core db failed")
	}
	return nil
}

func (db *DB) Close() error {
	if db.gormClient == nil {
		return nil
	}
	sqlDB, err := db.gormClient.DB()
	if err != nil {
		return errors.Wrap(err, "get core db failed")
	}
	return sqlDB.Close()
}

// ConvertDuplicateErr reports whether err is a primary or unique key violation
// from any supported dialect and returns ErrDuplicatedKey when it is.
func ConvertDuplicateErr(err error) (error, bool) {
	if err == nil {
		return nil, false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicatedKey, true
	}
	if _, ok := ConvertMySQLErr(err); ok {
		return ErrDuplicatedKey, true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == postgresUniqueViolation {
		return ErrDuplicatedKey, true
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicatedKey, true
	}
	return nil, false
}

func ConvertMySQLErr(err error) (error, bool) {
	var mysqlErr *goMysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mySQLDuplicateEntry {
		return ErrDuplicatedKey, true
	}
	return nil, false
}
