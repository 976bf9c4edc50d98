// Package export renders a user's records into downloadable documents.
//
// One gather step projects every requested section through the view
// types (stripping id and user_id), then a per-format encoder turns the
// projected sections into bytes. All four formats therefore expose
// exactly the same data; only the container differs.
package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/repository"
)

// Format selects the output document type.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatJSON  Format = "json"
)

// Result is a fully rendered export, ready to serve as an attachment.
type Result struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Engine reads records through the persistence gateway and renders
// them. It is stateless; one instance serves all requests.
type Engine struct {
	store  repository.Store
	logger *slog.Logger
}

func NewEngine(store repository.Store, logger *slog.Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// Export renders the requested sections in the given format. An empty
// sections slice means all six. Unknown formats and section keys fail
// with a validation error before any data is fetched.
func (e *Engine) Export(ctx context.Context, userID string, format Format, sections []string) (*Result, error) {
	switch format {
	case FormatPDF, FormatCSV, FormatExcel, FormatJSON:
	default:
		return nil, apperror.ValidationFailed("format",
			fmt.Sprintf("unknown export format %q", format))
	}

	requested := make(map[string]bool, len(sections))
	for _, key := range sections {
		if !ValidSection(key) {
			return nil, apperror.ValidationFailed("sections",
				fmt.Sprintf("unknown section %q", key))
		}
		requested[key] = true
	}
	if len(requested) == 0 {
		for _, key := range SectionOrder {
			requested[key] = true
		}
	}

	gathered, err := e.gather(ctx, userID, requested)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = encodeJSON(gathered)
	case FormatCSV:
		data, err = encodeCSV(gathered)
	case FormatExcel:
		data, err = encodeXLSX(gathered)
	case FormatPDF:
		data, err = encodePDF(gathered)
	}
	if err != nil {
		return nil, fmt.Errorf("export: encoding %s: %w", format, err)
	}

	e.logger.Info("export generated",
		slog.String("userID", userID),
		slog.String("format", string(format)),
		slog.Int("sections", len(gathered)),
		slog.Int("bytes", len(data)),
	)

	return &Result{
		Data:        data,
		ContentType: contentType(format),
		Filename:    "personal-data-export." + extension(format),
	}, nil
}

// gather loads the requested sections in canonical order and projects
// them through the views.
func (e *Engine) gather(ctx context.Context, userID string, requested map[string]bool) ([]section, error) {
	var out []section

	for _, key := range SectionOrder {
		if !requested[key] {
			continue
		}
		switch key {
		case SectionPersonal:
			info, err := e.store.PersonalInfo().Get(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("export: gathering personal info: %w", err)
			}
			out = append(out, personalSection(info))
		case SectionTravel:
			entries, err := e.store.TravelHistory().List(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("export: gathering travel history: %w", err)
			}
			out = append(out, travelSection(entries))
		case SectionFlights:
			flights, err := e.store.Flights().List(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("export: gathering flights: %w", err)
			}
			out = append(out, flightsSection(flights))
		case SectionEmployers:
			employers, err := e.store.Employers().List(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("export: gathering employers: %w", err)
			}
			out = append(out, employersSection(employers))
		case SectionEducation:
			entries, err := e.store.Education().List(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("export: gathering education: %w", err)
			}
			out = append(out, educationSection(entries))
		case SectionAddresses:
			addresses, err := e.store.Addresses().List(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("export: gathering addresses: %w", err)
			}
			out = append(out, addressesSection(addresses))
		}
	}

	return out, nil
}

func contentType(f Format) string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

func extension(f Format) string {
	if f == FormatExcel {
		return "xlsx"
	}
	return string(f)
}
