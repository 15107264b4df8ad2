// Package storage keeps recorded runs on disk, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/glcanvas/internal/config"
	"github.com/san-kum/glcanvas/internal/frame"
)

const (
	metadataFile = "metadata.json"
	statsFile    = "stats.csv"
	framesDir    = "frames"
	gifFile      = "frames.gif"
	svgFile      = "swarm.svg"
)

var statsHeader = []string{"frame", "time_ms", "dt_ms", "fps", "population"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Demo      string             `json:"demo"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	FPS       float64            `json:"fps"`
	Format    string             `json:"format"`
	Realtime  bool               `json:"realtime"`
	Params    config.DemoParams  `json:"params"`
	Frames    int                `json:"frames"`
	Failures  int                `json:"failures"`
	Metrics   map[string]float64 `json:"metrics"`
}

// MetadataFromConfig fills the fields a run inherits from its config.
func MetadataFromConfig(cfg *config.Config) RunMetadata {
	return RunMetadata{
		Demo:     cfg.Demo,
		Seed:     cfg.Seed,
		Width:    cfg.Width,
		Height:   cfg.Height,
		FPS:      cfg.FPS,
		Format:   cfg.Format,
		Realtime: cfg.Realtime,
		Params:   cfg.Params,
	}
}

// Create makes a new run directory named <demo>_<unixnano> and writes
// its initial metadata.
func (s *Store) Create(meta RunMetadata) (*Run, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Demo, now.UnixNano())
	meta.Timestamp = now
	if meta.Metrics == nil {
		meta.Metrics = make(map[string]float64)
	}

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	r := &Run{dir: dir, meta: meta}
	if err := r.writeMetadata(); err != nil {
		return nil, err
	}

	f, err := os.Create(filepath.Join(dir, statsFile))
	if err != nil {
		return nil, err
	}
	r.statsFile = f
	r.stats = csv.NewWriter(f)
	if err := r.stats.Write(statsHeader); err != nil {
		f.Close()
		return nil, err
	}

	return r, nil
}

// List returns the stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStats reads back the per-frame samples of a run. Rows that do not
// parse are skipped.
func (s *Store) LoadStats(runID string) ([]frame.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []frame.Sample{}, nil
	}

	samples := make([]frame.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(statsHeader) {
			continue
		}
		smp, err := parseSample(record)
		if err != nil {
			continue
		}
		samples = append(samples, smp)
	}

	return samples, nil
}

// Path returns the directory of a stored run.
func (s *Store) Path(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

func formatSample(smp frame.Sample) []string {
	fps := ""
	if smp.FPSValid {
		fps = strconv.FormatFloat(smp.FPS, 'f', 3, 64)
	}
	return []string{
		strconv.Itoa(smp.Index),
		strconv.FormatFloat(smp.Time, 'f', 3, 64),
		strconv.FormatFloat(smp.DT, 'f', 3, 64),
		fps,
		strconv.Itoa(smp.Population),
	}
}

func parseSample(record []string) (frame.Sample, error) {
	var smp frame.Sample
	var err error

	if smp.Index, err = strconv.Atoi(record[0]); err != nil {
		return smp, err
	}
	if smp.Time, err = strconv.ParseFloat(record[1], 64); err != nil {
		return smp, err
	}
	if smp.DT, err = strconv.ParseFloat(record[2], 64); err != nil {
		return smp, err
	}
	if record[3] != "" {
		if smp.FPS, err = strconv.ParseFloat(record[3], 64); err != nil {
			return smp, err
		}
		smp.FPSValid = true
	}
	if smp.Population, err = strconv.Atoi(record[4]); err != nil {
		return smp, err
	}
	return smp, nil
}
