package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"device-catalog/models"
	"device-catalog/utils"
)

// deviceColumns is the insert/select column list of the devices table.
// position preserves source order, since ids are not guaranteed unique.
var deviceColumns = []string{
	"position", "id", "brand", "model",
	"screen_size", "price", "release_year", "battery_capacity", "ram", "storage",
	"camera_mp", "front_camera_mp", "refresh_rate", "weight", "thickness",
	"os", "body_material", "chipset", "gpu", "dual_sim", "network",
	"bluetooth", "wifi", "usb", "fast_charging", "fingerprint_sensor",
}

// PostgresStore keeps a copy of the catalog snapshot in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, retrying the ping with
// back-off, runs schema migrations, and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 10, BaseDelay: 2 * time.Second}
	}
	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS devices (
			position           INTEGER PRIMARY KEY,
			id                 INTEGER NOT NULL,
			brand              TEXT    NOT NULL DEFAULT '',
			model              TEXT    NOT NULL DEFAULT '',
			screen_size        DOUBLE PRECISION,
			price              DOUBLE PRECISION,
			release_year       DOUBLE PRECISION,
			battery_capacity   DOUBLE PRECISION,
			ram                DOUBLE PRECISION,
			storage            DOUBLE PRECISION,
			camera_mp          DOUBLE PRECISION,
			front_camera_mp    DOUBLE PRECISION,
			refresh_rate       DOUBLE PRECISION,
			weight             DOUBLE PRECISION,
			thickness          DOUBLE PRECISION,
			os                 TEXT NOT NULL DEFAULT '',
			body_material      TEXT NOT NULL DEFAULT '',
			chipset            TEXT NOT NULL DEFAULT '',
			gpu                TEXT NOT NULL DEFAULT '',
			dual_sim           TEXT NOT NULL DEFAULT '',
			network            TEXT NOT NULL DEFAULT '',
			bluetooth          TEXT NOT NULL DEFAULT '',
			wifi               TEXT NOT NULL DEFAULT '',
			usb                TEXT NOT NULL DEFAULT '',
			fast_charging      TEXT NOT NULL DEFAULT '',
			fingerprint_sensor TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_devices_id    ON devices(id);
		CREATE INDEX IF NOT EXISTS idx_devices_brand ON devices(brand);
		CREATE INDEX IF NOT EXISTS idx_devices_price ON devices(price);
	`)
	return err
}

// Sync replaces the table contents with the snapshot inside one transaction.
func (ps *PostgresStore) Sync(ctx context.Context, snap *models.Snapshot) error {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM devices"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	devices := snap.Devices()
	const batchSize = 50
	for i := 0; i < len(devices); i += batchSize {
		end := i + batchSize
		if end > len(devices) {
			end = len(devices)
		}
		if err := insertBatch(ctx, tx, i, devices[i:end]); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, offset int, batch []models.Device) error {
	width := len(deviceColumns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*width)

	for idx, d := range batch {
		base := idx * width
		placeholders := make([]string, width)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			offset+idx, d.ID, d.Brand, d.Model,
			nullable(d.ScreenSize), nullable(d.Price), nullable(d.ReleaseYear),
			nullable(d.BatteryCapacity), nullable(d.RAM), nullable(d.Storage),
			nullable(d.CameraMP), nullable(d.FrontCameraMP), nullable(d.RefreshRate),
			nullable(d.Weight), nullable(d.Thickness),
			d.OS, d.BodyMaterial, d.Chipset, d.GPU, d.DualSim, d.Network,
			d.Bluetooth, d.WiFi, d.USB, d.FastCharging, d.FingerprintSensor)
	}

	query := fmt.Sprintf("INSERT INTO devices (%s) VALUES %s",
		strings.Join(deviceColumns, ", "), strings.Join(valueStrings, ","))

	_, err := tx.ExecContext(ctx, query, valueArgs...)
	return err
}

// FetchAll reads every stored device in source order. NULL numerics come
// back as NaN.
func (ps *PostgresStore) FetchAll(ctx context.Context) ([]models.Device, error) {
	rows, err := ps.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM devices ORDER BY position", strings.Join(deviceColumns, ", ")))
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var devices []models.Device
	for rows.Next() {
		var (
			position int
			d        models.Device
			nums     [11]sql.NullFloat64
		)
		if err := rows.Scan(
			&position, &d.ID, &d.Brand, &d.Model,
			&nums[0], &nums[1], &nums[2], &nums[3], &nums[4], &nums[5],
			&nums[6], &nums[7], &nums[8], &nums[9], &nums[10],
			&d.OS, &d.BodyMaterial, &d.Chipset, &d.GPU, &d.DualSim, &d.Network,
			&d.Bluetooth, &d.WiFi, &d.USB, &d.FastCharging, &d.FingerprintSensor,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		d.ScreenSize = fromNullable(nums[0])
		d.Price = fromNullable(nums[1])
		d.ReleaseYear = fromNullable(nums[2])
		d.BatteryCapacity = fromNullable(nums[3])
		d.RAM = fromNullable(nums[4])
		d.Storage = fromNullable(nums[5])
		d.CameraMP = fromNullable(nums[6])
		d.FrontCameraMP = fromNullable(nums[7])
		d.RefreshRate = fromNullable(nums[8])
		d.Weight = fromNullable(nums[9])
		d.Thickness = fromNullable(nums[10])
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func fromNullable(n sql.NullFloat64) float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Float64
}
