package rrim

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/reliefmap/rrim-utils/internal/raster"
	"github.com/reliefmap/rrim-utils/internal/utils"
)

// CachedRasters are the two expensive intermediates worth reusing while
// iterating on color parameters only.
type CachedRasters struct {
	Slope        *raster.Raster
	DiffOpenness *raster.Raster
}

// Cache looks up and stores slope/differential-openness rasters keyed by
// the DEM's identity and the terrain parameter set. Color parameters are
// deliberately not part of the key, changing them must still hit.
type Cache interface {
	Lookup(cfg Config) (*CachedRasters, bool, error)
	Store(cfg Config, slope, diff *raster.Raster) error
}

// fileCache keeps the rasters as geotiffs next to the DEM (the
// <stem>_slope.tif / <stem>_diff_opns.tif convention) and records the DEM
// mtime plus the terrain parameters in a sqlite manifest so a stale or
// differently-parameterized artifact never masquerades as a hit.
type fileCache struct{}

// NewFileCache returns the on-disk cache backing.
func NewFileCache() Cache {
	return fileCache{}
}

func manifestPath(demPath string) string {
	return filepath.Join(filepath.Dir(demPath), ".rrim-cache.db")
}

func openManifest(demPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", manifestPath(demPath))
	if err != nil {
		return nil, fmt.Errorf("open cache manifest: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS artifacts (
		dem        TEXT PRIMARY KEY,
		mtime      INTEGER NOT NULL,
		nodata     REAL NOT NULL,
		fill       INTEGER NOT NULL,
		directions INTEGER NOT NULL,
		radius     INTEGER NOT NULL,
		noise      INTEGER NOT NULL,
		slope      TEXT NOT NULL,
		diff       TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache manifest: %w", err)
	}
	return db, nil
}

func demMtime(demPath string) (int64, error) {
	info, err := os.Stat(demPath)
	if err != nil {
		return 0, err
	}
	return info.ModTime().UnixNano(), nil
}

func (fileCache) Lookup(cfg Config) (*CachedRasters, bool, error) {
	if !utils.IsFile(manifestPath(cfg.DEMPath)) {
		return nil, false, nil
	}

	db, err := openManifest(cfg.DEMPath)
	if err != nil {
		return nil, false, err
	}
	defer db.Close()

	mtime, err := demMtime(cfg.DEMPath)
	if err != nil {
		return nil, false, err
	}

	var slopePath, diffPath string
	err = db.QueryRow(`SELECT slope, diff FROM artifacts
		WHERE dem = ? AND mtime = ? AND nodata = ? AND fill = ?
		AND directions = ? AND radius = ? AND noise = ?`,
		cfg.DEMPath, mtime, cfg.NoDataValue, cfg.FillDepressions,
		cfg.Directions, cfg.Radius, cfg.Noise).Scan(&slopePath, &diffPath)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache manifest: %w", err)
	}

	if !utils.IsReadableFile(slopePath) || !utils.IsReadableFile(diffPath) {
		return nil, false, nil
	}

	slope, err := raster.Load(slopePath, cfg.NoDataValue)
	if err != nil {
		return nil, false, fmt.Errorf("reload cached slope: %w", err)
	}
	diff, err := raster.Load(diffPath, cfg.NoDataValue)
	if err != nil {
		return nil, false, fmt.Errorf("reload cached openness: %w", err)
	}

	return &CachedRasters{Slope: slope, DiffOpenness: diff}, true, nil
}

func (fileCache) Store(cfg Config, slope, diff *raster.Raster) error {
	slopePath := SlopePath(cfg.DEMPath)
	diffPath := DiffOpennessPath(cfg.DEMPath)

	if err := raster.SaveGrid(slopePath, slope, slope); err != nil {
		return err
	}
	if err := raster.SaveGrid(diffPath, diff, slope); err != nil {
		return err
	}

	db, err := openManifest(cfg.DEMPath)
	if err != nil {
		return err
	}
	defer db.Close()

	mtime, err := demMtime(cfg.DEMPath)
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT OR REPLACE INTO artifacts
		(dem, mtime, nodata, fill, directions, radius, noise, slope, diff)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cfg.DEMPath, mtime, cfg.NoDataValue, cfg.FillDepressions,
		cfg.Directions, cfg.Radius, cfg.Noise, slopePath, diffPath)
	if err != nil {
		return fmt.Errorf("record cache manifest: %w", err)
	}
	return nil
}

// MemCache is an in-memory Cache, used by tests in place of the file
// backing.
type MemCache struct {
	entries map[string]*CachedRasters
}

// NewMemCache returns an empty in-memory cache.
func NewMemCache() *MemCache {
	return &MemCache{entries: map[string]*CachedRasters{}}
}

func memKey(cfg Config) string {
	return fmt.Sprintf("%s|%g|%t|%d|%d|%d",
		cfg.DEMPath, cfg.NoDataValue, cfg.FillDepressions,
		cfg.Directions, cfg.Radius, cfg.Noise)
}

func (m *MemCache) Lookup(cfg Config) (*CachedRasters, bool, error) {
	c, ok := m.entries[memKey(cfg)]
	return c, ok, nil
}

func (m *MemCache) Store(cfg Config, slope, diff *raster.Raster) error {
	m.entries[memKey(cfg)] = &CachedRasters{Slope: slope, DiffOpenness: diff}
	return nil
}
