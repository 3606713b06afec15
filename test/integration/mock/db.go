package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/db"
)

var once sync.Once
var database *Db

// Db is the shared in-memory database used by every scenario.
type Db struct {
	conn   *db.Database
	models map[string]any
}

// NewDb opens the shared sqlite database once and migrates the given models.
func NewDb(name string, models map[string]any) *Db {
	once.Do(func() {
		database = open(name, models)
	})
	return database
}

func open(name string, models map[string]any) *Db {
	conn, err := db.NewConnection(&config.DatabaseConfig{
		Driver: db.DriverSQLite,
		URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	d := &Db{conn: conn, models: models}
	if err := d.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}
	return d
}

// Conn returns the gorm handle.
func (d *Db) Conn() *gorm.DB {
	return d.conn.DB()
}

// Database returns the wrapped connection.
func (d *Db) Database() *db.Database {
	return d.conn
}

// ClearDB drops every known table and migrates the schema again.
func (d *Db) ClearDB() error {
	conn := d.conn.DB()
	for table := range d.models {
		if err := conn.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	if err := d.conn.Migrate(); err != nil {
		return err
	}
	for table, model := range d.models {
		if !conn.Migrator().HasTable(model) {
			return fmt.Errorf("table %s was not created", table)
		}
	}
	return nil
}

// Count returns the number of rows in table.
func (d *Db) Count(table string) (int64, error) {
	model, ok := d.models[table]
	if !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var count int64
	err := d.conn.DB().Model(model).Count(&count).Error
	return count, err
}

// Exec runs raw SQL, used by scenarios that tamper with stored state.
func (d *Db) Exec(sql string, args ...any) error {
	return d.conn.DB().Exec(sql, args...).Error
}
