package migration

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Procedure performs the schema upgrade FROM the version it is registered
// under. It runs against the shared migration transaction.
type Procedure func(tx *gorm.DB) error

// Runner walks the registered procedures from the store's current version
// upward, all inside a single transaction. A failure anywhere rolls the whole
// run back, so a crashed or failed run leaves the recorded version untouched.
type Runner struct {
	procedures map[int]Procedure
}

func NewRunner() *Runner {
	r := &Runner{
		procedures: make(map[int]Procedure),
	}
	r.Register(0, Baseline)
	return r
}

// Register binds proc to the version it upgrades from. Re-registering a
// version overwrites the previous procedure.
func (r *Runner) Register(from int, proc Procedure) {
	r.procedures[from] = proc
}

// pending returns the contiguous run of registered versions starting at
// current. A gap ends the run: it is the designed terminal condition, not an
// error.
func (r *Runner) pending(current int) []int {
	versions := make([]int, 0, len(r.procedures))
	for v := range r.procedures {
		versions = append(versions, v)
	}
	sort.Ints(versions)

	run := make([]int, 0, len(versions))
	next := current
	for _, v := range versions {
		if v < next {
			continue
		}
		if v != next {
			break
		}
		run = append(run, v)
		next++
	}
	return run
}

func (r *Runner) Run(db *gorm.DB) error {
	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin migration transaction: %w", tx.Error)
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if err := ensureVersionTable(tx); err != nil {
		return fmt.Errorf("ensure schema_versions: %w", err)
	}

	current, err := currentVersion(tx)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, from := range r.pending(current) {
		if err := r.procedures[from](tx); err != nil {
			return fmt.Errorf("migrate from version %d: %w", from, err)
		}
		if err := recordVersion(tx, from+1); err != nil {
			return fmt.Errorf("record version %d: %w", from+1, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit migration transaction: %w", err)
	}
	committed = true
	return nil
}

func ensureVersionTable(tx *gorm.DB) error {
	return tx.Exec(`CREATE TABLE IF NOT EXISTS schema_versions (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL
	)`).Error
}

func currentVersion(tx *gorm.DB) (int, error) {
	var version int
	err := tx.Raw(`SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&version).Error
	return version, err
}

func recordVersion(tx *gorm.DB, version int) error {
	return tx.Exec(`INSERT INTO schema_versions (version, applied_at) VALUES (?, ?)`,
		version, time.Now().UTC()).Error
}

// CurrentVersion reads the recorded schema version outside a migration run.
// A missing schema_versions table reads as version 0 (fresh store).
func CurrentVersion(db *gorm.DB) (int, error) {
	if !db.Migrator().HasTable("schema_versions") {
		return 0, nil
	}
	return currentVersion(db)
}
