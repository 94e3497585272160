// Package importer loads scholarship listings from JSON files into the
// database, validating against a JSON Schema and flagging suspicious
// listings on the way in.
package importer

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/scholariq/scholariq/internal/db"
	"github.com/scholariq/scholariq/internal/fraud"
)

//go:embed scholarship_import.schema.json
var importSchema []byte

// Store is the subset of db.DB the importer needs.
type Store interface {
	GetUniversityByName(ctx context.Context, name string) (*db.University, error)
	CreateUniversity(ctx context.Context, u *db.University) (*db.University, error)
	CreateScholarship(ctx context.Context, s *db.Scholarship) (*db.Scholarship, error)
}

// UniversityRecord is the institution block of an import record.
type UniversityRecord struct {
	Name       string   `json:"name"`
	City       string   `json:"city"`
	Country    string   `json:"country"`
	WebsiteURL string   `json:"website_url"`
	QSRanking  *int     `json:"qs_ranking"`
	MinCGPA    *float64 `json:"min_cgpa"`
	MinIELTS   *float64 `json:"min_ielts"`
}

// Record is one scholarship listing in an import file.
type Record struct {
	University     UniversityRecord `json:"university"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Country        string           `json:"country"`
	City           string           `json:"city"`
	DegreeLevel    string           `json:"degree_level"`
	FieldOfStudy   string           `json:"field_of_study"`
	FundingType    string           `json:"funding_type"`
	FundingAmount  *float64         `json:"funding_amount_numeric"`
	TuitionFee     *float64         `json:"tuition_fee_numeric"`
	MinCGPA        *float64         `json:"min_cgpa"`
	Deadline       string           `json:"deadline"` // YYYY-MM-DD
	Eligibility    string           `json:"eligibility"`
	ScholarshipURL string           `json:"scholarship_url"`
}

// Summary reports the outcome of one import run.
type Summary struct {
	Imported     int
	Flagged      int
	Universities int // newly created
}

// Importer loads import files into the store.
type Importer struct {
	store  Store
	logger *zap.Logger
}

// New creates an Importer.
func New(store Store, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{store: store, logger: logger}
}

// ImportFile validates and imports one JSON file. Listings tripping the
// fraud screen are stored flagged rather than dropped, so reviewers can see
// them.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return i.Import(ctx, data)
}

// Import validates and imports raw JSON data.
func (i *Importer) Import(ctx context.Context, data []byte) (*Summary, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse import data: %w", err)
	}

	summary := &Summary{}
	// Cache universities within a run so repeated names hit the DB once.
	universities := make(map[string]*db.University)

	for idx, rec := range records {
		university, err := i.resolveUniversity(ctx, rec.University, universities, summary)
		if err != nil {
			return summary, fmt.Errorf("record %d: %w", idx, err)
		}

		scholarship, err := rec.toScholarship(university.ID)
		if err != nil {
			return summary, fmt.Errorf("record %d: %w", idx, err)
		}

		if report := fraud.Analyze(rec.Title, rec.Description); report.Suspicious {
			scholarship.IsSuspicious = true
			summary.Flagged++
			i.logger.Warn("flagged suspicious listing",
				zap.String("title", rec.Title),
				zap.String("reason", report.Reason))
		}

		if _, err := i.store.CreateScholarship(ctx, scholarship); err != nil {
			return summary, fmt.Errorf("record %d: %w", idx, err)
		}
		summary.Imported++
	}

	i.logger.Info("import complete",
		zap.Int("imported", summary.Imported),
		zap.Int("flagged", summary.Flagged),
		zap.Int("new_universities", summary.Universities))
	return summary, nil
}

func (i *Importer) resolveUniversity(ctx context.Context, rec UniversityRecord, cache map[string]*db.University, summary *Summary) (*db.University, error) {
	if u, ok := cache[rec.Name]; ok {
		return u, nil
	}

	u, err := i.store.GetUniversityByName(ctx, rec.Name)
	if err != nil {
		return nil, err
	}
	if u == nil {
		u, err = i.store.CreateUniversity(ctx, &db.University{
			Name:       rec.Name,
			City:       rec.City,
			Country:    rec.Country,
			WebsiteURL: rec.WebsiteURL,
			QSRanking:  rec.QSRanking,
			MinCGPA:    rec.MinCGPA,
			MinIELTS:   rec.MinIELTS,
		})
		if err != nil {
			return nil, err
		}
		summary.Universities++
	}

	cache[rec.Name] = u
	return u, nil
}

func (r Record) toScholarship(universityID uuid.UUID) (*db.Scholarship, error) {
	s := &db.Scholarship{
		UniversityID:   universityID,
		Title:          r.Title,
		Description:    r.Description,
		Country:        r.Country,
		City:           r.City,
		DegreeLevel:    r.DegreeLevel,
		FieldOfStudy:   r.FieldOfStudy,
		FundingType:    r.FundingType,
		FundingAmount:  r.FundingAmount,
		TuitionFee:     r.TuitionFee,
		MinCGPA:        r.MinCGPA,
		Eligibility:    r.Eligibility,
		ScholarshipURL: r.ScholarshipURL,
	}

	if r.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", r.Deadline)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline %q: %w", r.Deadline, err)
		}
		s.Deadline = &deadline
	}

	return s, nil
}

// validate checks the raw document against the import schema.
func validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(importSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("failed to run schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("import data failed validation:")
	for _, desc := range result.Errors() {
		sb.WriteString(fmt.Sprintf("\n  %s: %s", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("%s", sb.String())
}
