package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/pkg/logging"
)

var prescriptionStatuses = map[string]bool{"active": true, "expired": true, "used": true}

type PrescriptionService struct {
	Repo *repo.GormRepo
}

func (s *PrescriptionService) List(ctx context.Context, userID uuid.UUID, status string) ([]models.Prescription, error) {
	if status != "" && !prescriptionStatuses[status] {
		return nil, validation("status must be one of: active, expired, used")
	}
	return s.Repo.ListPrescriptions(ctx, userID, status)
}

func (s *PrescriptionService) Create(ctx context.Context, userID uuid.UUID, req transport.PrescriptionRequest) (*models.Prescription, error) {
	if req.IssueDate != nil && req.ExpiryDate != nil && req.ExpiryDate.Before(*req.IssueDate) {
		return nil, validation("expiryDate must be after issueDate")
	}
	p := models.Prescription{
		UserID:           userID,
		PrescriptionFile: req.PrescriptionFile,
		DoctorName:       req.DoctorName,
		HospitalName:     req.HospitalName,
		IssueDate:        req.IssueDate,
		ExpiryDate:       req.ExpiryDate,
		Medicines:        req.Medicines,
		Status:           "active",
	}
	if p.Medicines == nil {
		p.Medicines = []models.Medicine{}
	}
	if err := s.Repo.CreatePrescription(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PrescriptionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return orNotFound(s.Repo.DeletePrescription(ctx, id, userID), "Prescription not found")
}

type LabTestService struct {
	Repo *repo.GormRepo
}

func (s *LabTestService) List(ctx context.Context, f repo.LabTestFilter) (int64, []models.LabTest, error) {
	return s.Repo.ListLabTests(ctx, f)
}

func (s *LabTestService) Get(ctx context.Context, id uuid.UUID) (*models.LabTest, error) {
	t, err := s.Repo.GetLabTest(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "Lab test not found")
	}
	return t, nil
}

func (s *LabTestService) Create(ctx context.Context, req transport.LabTestRequest) (*models.LabTest, error) {
	t := models.LabTest{
		TestName:                  req.TestName,
		Description:               req.Description,
		Price:                     req.Price,
		Category:                  req.Category,
		ReportTime:                req.ReportTime,
		SampleType:                req.SampleType,
		Fasting:                   req.Fasting,
		FastingHours:              req.FastingHours,
		HomeCollectionAvailable:   true,
		CenterCollectionAvailable: true,
		IsActive:                  true,
	}
	if req.HomeCollectionAvailable != nil {
		t.HomeCollectionAvailable = *req.HomeCollectionAvailable
	}
	if req.CenterCollectionAvailable != nil {
		t.CenterCollectionAvailable = *req.CenterCollectionAvailable
	}
	if err := s.Repo.CreateLabTest(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Book schedules a collection for an active test. Home collection needs an
// address and must be offered by the test.
func (s *LabTestService) Book(ctx context.Context, userID, testID uuid.UUID, req transport.BookingRequest) (*models.LabTestBooking, error) {
	t, err := s.Get(ctx, testID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, notFound("Lab test not found")
	}
	switch req.CollectionType {
	case "home":
		if !t.HomeCollectionAvailable {
			return nil, validation("Home collection is not available for this test")
		}
		if req.Address == "" {
			return nil, validation("missing required field: address")
		}
	case "center":
		if !t.CenterCollectionAvailable {
			return nil, validation("Center collection is not available for this test")
		}
	}

	b := models.LabTestBooking{
		UserID:         userID,
		LabTestID:      t.ID,
		TestName:       t.TestName,
		Price:          t.Price,
		CollectionType: req.CollectionType,
		CollectionDate: req.CollectionDate.UTC(),
		CollectionTime: req.CollectionTime,
		Address:        req.Address,
		Status:         "scheduled",
		Notes:          req.Notes,
	}
	if err := s.Repo.CreateLabTestBooking(ctx, &b); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("lab_test_booked", "booking_id", b.ID, "lab_test_id", t.ID)
	return &b, nil
}

func (s *LabTestService) Bookings(ctx context.Context, userID uuid.UUID) ([]models.LabTestBooking, error) {
	return s.Repo.ListLabTestBookings(ctx, userID)
}

type ConsultationService struct {
	Repo *repo.GormRepo
	Now  func() time.Time
}

var consultationStatuses = map[string]bool{
	models.ConsultationScheduled:  true,
	models.ConsultationInProgress: true,
	models.ConsultationCompleted:  true,
	models.ConsultationCancelled:  true,
}

func (s *ConsultationService) List(ctx context.Context, userID uuid.UUID, status string) ([]models.DoctorConsultation, error) {
	if status != "" && !consultationStatuses[status] {
		return nil, validation("status must be one of: scheduled, in-progress, completed, cancelled")
	}
	return s.Repo.ListConsultations(ctx, userID, status)
}

func (s *ConsultationService) Create(ctx context.Context, userID uuid.UUID, req transport.ConsultationRequest) (*models.DoctorConsultation, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	if req.StartTime.Before(now) {
		return nil, validation("startTime must be in the future")
	}
	c := models.DoctorConsultation{
		UserID:           userID,
		DoctorName:       req.DoctorName,
		Specialization:   req.Specialization,
		ConsultationType: req.ConsultationType,
		StartTime:        req.StartTime.UTC(),
		Duration:         req.Duration,
		Fees:             req.Fees,
		Status:           models.ConsultationScheduled,
		Notes:            req.Notes,
	}
	if c.Duration == 0 {
		c.Duration = 30
	}
	if err := s.Repo.CreateConsultation(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ConsultationService) Cancel(ctx context.Context, userID, id uuid.UUID) (*models.DoctorConsultation, error) {
	c, err := s.Repo.CancelConsultation(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotCancellable) {
			return nil, conflict("Only scheduled consultations can be cancelled")
		}
		return nil, orNotFound(err, "Consultation not found")
	}
	return c, nil
}
