package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/auth"
	"github.com/edutrack/schoolms/internal/pkg/csvio"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
	"github.com/edutrack/schoolms/internal/pkg/websocket"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// serialAttempts bounds the retries for one voucher when its serial collides
const serialAttempts = 5

// VoucherService generates and lists registration vouchers
type VoucherService struct {
	tx       db.Transactor
	schools  SchoolStore
	classes  ClassStore
	vouchers VoucherStore
	events   EventPublisher
	policy   Policy
	logger   zerolog.Logger

	// serial suffix source, replaced in tests
	newSuffix func() string
}

// NewVoucherService creates a new VoucherService
func NewVoucherService(d Deps) *VoucherService {
	return &VoucherService{
		tx:        d.Tx,
		schools:   d.Schools,
		classes:   d.Classes,
		vouchers:  d.Vouchers,
		events:    publisherOrNoop(d.Events),
		policy:    d.Policy.withDefaults(),
		logger:    d.Logger,
		newSuffix: uuidSuffix,
	}
}

func uuidSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// SerialPrefix is the kind letter followed by the first three letters of the
// school name, upper-cased and padded with X for short names.
func SerialPrefix(kind models.VoucherKind, schoolName string) string {
	var b strings.Builder
	b.WriteString(kind.SerialPrefix())
	n := 0
	for _, r := range schoolName {
		if n == 3 {
			break
		}
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			n++
		}
	}
	for ; n < 3; n++ {
		b.WriteByte('X')
	}
	return b.String()
}

// Generate creates a batch of unused vouchers in one transaction
func (s *VoucherService) Generate(ctx context.Context, schoolID, createdBy int64, req *dto.GenerateVouchersRequest) (*dto.GenerateVouchersResponse, error) {
	if req.Quantity < 1 || req.Quantity > s.policy.MaxVoucherBatch {
		return nil, apperrors.NewValidationError("quantity", fmt.Sprintf("must be between 1 and %d", s.policy.MaxVoucherBatch))
	}
	if !req.Kind.Valid() {
		return nil, apperrors.NewValidationError("kind", "must be student or teacher")
	}

	var class *models.Class
	if req.ClassID != nil {
		if req.Kind != models.VoucherKindStudent {
			return nil, apperrors.NewValidationError("classId", "only student vouchers can target a class")
		}
		var err error
		if class, err = s.classes.GetByID(ctx, schoolID, *req.ClassID); err != nil {
			return nil, err
		}
		if !class.IsActive {
			return nil, apperrors.NewBadRequestError("class is not active")
		}
	}

	school, err := s.schools.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	canSignin := true
	if req.CanSignin != nil {
		canSignin = *req.CanSignin
	}
	prefix := SerialPrefix(req.Kind, school.Name)

	vouchers := make([]*models.Voucher, 0, req.Quantity)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		for i := 0; i < req.Quantity; i++ {
			v, err := s.insertVoucher(ctx, &models.Voucher{
				SchoolID:        schoolID,
				Kind:            req.Kind,
				ClassID:         req.ClassID,
				CanSignin:       canSignin,
				CreatedByUserID: &createdBy,
				Class:           class,
			}, prefix)
			if err != nil {
				return err
			}
			vouchers = append(vouchers, v)
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("schoolID", schoolID).Int("quantity", req.Quantity).Msg("Voucher generation failed")
		return nil, err
	}

	s.logger.Info().
		Int64("schoolID", schoolID).
		Str("kind", string(req.Kind)).
		Int("count", len(vouchers)).
		Msg("Vouchers generated")
	s.events.Publish(schoolID, websocket.EventVouchersGenerated, map[string]interface{}{
		"count":   len(vouchers),
		"kind":    req.Kind,
		"classId": req.ClassID,
	})

	return &dto.GenerateVouchersResponse{Count: len(vouchers), Vouchers: vouchers}, nil
}

func (s *VoucherService) insertVoucher(ctx context.Context, v *models.Voucher, prefix string) (*models.Voucher, error) {
	for attempt := 0; attempt < serialAttempts; attempt++ {
		pin, err := auth.GeneratePIN()
		if err != nil {
			return nil, fmt.Errorf("error generating pin: %w", err)
		}
		v.SerialNumber = prefix + "-" + s.newSuffix()
		v.PIN = pin

		inserted, err := s.vouchers.Insert(ctx, v)
		if err != nil {
			return nil, err
		}
		if inserted {
			return v, nil
		}
		s.logger.Warn().Str("serialNumber", v.SerialNumber).Msg("Voucher serial collision, retrying")
	}
	return nil, fmt.Errorf("could not find a free voucher serial after %d attempts", serialAttempts)
}

// Get returns a voucher of the school
func (s *VoucherService) Get(ctx context.Context, schoolID, id int64) (*models.Voucher, error) {
	return s.vouchers.GetByID(ctx, schoolID, id)
}

// List returns a page of vouchers
func (s *VoucherService) List(ctx context.Context, schoolID int64, f dto.VoucherFilter) ([]*models.Voucher, int64, error) {
	helpers.NormalizeListParams(&f.ListParams)
	return s.vouchers.List(ctx, schoolID, f)
}

// Stats summarises the vouchers of the school
func (s *VoucherService) Stats(ctx context.Context, schoolID int64) (*models.VoucherStats, error) {
	return s.vouchers.Stats(ctx, schoolID)
}

// ExportCSV writes the vouchers matching f, PINs included, for printing
func (s *VoucherService) ExportCSV(ctx context.Context, schoolID int64, f dto.VoucherFilter, w io.Writer) (int, error) {
	vouchers, err := s.vouchers.ListAll(ctx, schoolID, f)
	if err != nil {
		return 0, err
	}
	records := make([]csvio.VoucherRecord, 0, len(vouchers))
	for _, v := range vouchers {
		rec := csvio.VoucherRecord{
			SerialNumber: v.SerialNumber,
			PIN:          v.PIN,
			Kind:         string(v.Kind),
			CanSignin:    v.CanSignin,
			IsUsed:       v.IsUsed,
		}
		if v.Class != nil {
			rec.ClassName = v.Class.DisplayName()
		}
		records = append(records, rec)
	}
	if err := csvio.WriteVouchers(w, records); err != nil {
		return 0, fmt.Errorf("error writing voucher export: %w", err)
	}
	return len(records), nil
}
