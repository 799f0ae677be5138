package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"telehealth-api/internal/domain/entity"
	"telehealth-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type mockAlertRepository struct {
	mock.Mock
}

func (m *mockAlertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *mockAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Alert, error) {
	args := m.Called(ctx, id)
	alert, _ := args.Get(0).(*entity.Alert)
	return alert, args.Error(1)
}

func (m *mockAlertRepository) FindVisible(ctx context.Context, filter *entity.AlertFilter) ([]entity.Alert, int64, error) {
	args := m.Called(ctx, filter)
	alerts, _ := args.Get(0).([]entity.Alert)
	return alerts, args.Get(1).(int64), args.Error(2)
}

func (m *mockAlertRepository) Update(ctx context.Context, alert *entity.Alert, replaceRelated bool) (int64, error) {
	args := m.Called(ctx, alert, replaceRelated)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAlertRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAlertRepository) DeleteExpired(ctx context.Context, now time.Time, limit int) (int64, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAlertRepository) MarkRead(ctx context.Context, read *entity.AlertRead) error {
	args := m.Called(ctx, read)
	return args.Error(0)
}

func (m *mockAlertRepository) FindReadAlertIDs(ctx context.Context, userID uuid.UUID, alertIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, userID, alertIDs)
	read, _ := args.Get(0).(map[uuid.UUID]bool)
	return read, args.Error(1)
}

func (m *mockAlertRepository) CountUnread(ctx context.Context, viewer entity.Identity) (int64, error) {
	args := m.Called(ctx, viewer)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepository) FindDoctors(ctx context.Context, filter *entity.DoctorFilter) ([]entity.User, int64, error) {
	args := m.Called(ctx, filter)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Get(1).(int64), args.Error(2)
}

type mockConsultationRepository struct {
	mock.Mock
}

func (m *mockConsultationRepository) Create(ctx context.Context, consultation *entity.Consultation) error {
	args := m.Called(ctx, consultation)
	return args.Error(0)
}

func (m *mockConsultationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Consultation, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Consultation)
	return c, args.Error(1)
}

func (m *mockConsultationRepository) FindAll(ctx context.Context, filter *entity.ConsultationFilter) ([]entity.Consultation, int64, error) {
	args := m.Called(ctx, filter)
	cs, _ := args.Get(0).([]entity.Consultation)
	return cs, args.Get(1).(int64), args.Error(2)
}

func (m *mockConsultationRepository) Update(ctx context.Context, consultation *entity.Consultation) (int64, error) {
	args := m.Called(ctx, consultation)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockConsultationRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockSymptomReportRepository struct {
	mock.Mock
}

func (m *mockSymptomReportRepository) Create(ctx context.Context, report *entity.SymptomReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *mockSymptomReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SymptomReport, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.SymptomReport)
	return r, args.Error(1)
}

func (m *mockSymptomReportRepository) FindAll(ctx context.Context, filter *entity.ReportFilter) ([]entity.SymptomReport, int64, error) {
	args := m.Called(ctx, filter)
	rs, _ := args.Get(0).([]entity.SymptomReport)
	return rs, args.Get(1).(int64), args.Error(2)
}

func (m *mockSymptomReportRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.SymptomReport, error) {
	args := m.Called(ctx, patientID)
	rs, _ := args.Get(0).([]entity.SymptomReport)
	return rs, args.Error(1)
}

func (m *mockSymptomReportRepository) Update(ctx context.Context, report *entity.SymptomReport) (int64, error) {
	args := m.Called(ctx, report)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSymptomReportRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockAuditLogRepository struct {
	mock.Mock
}

func (m *mockAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *mockAuditLogRepository) FindAll(ctx context.Context, filter *entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	args := m.Called(ctx, filter)
	ls, _ := args.Get(0).([]entity.AuditLog)
	return ls, args.Get(1).(int64), args.Error(2)
}

func (m *mockAuditLogRepository) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*entity.AuditLog)
	return l, args.Error(1)
}

type mockLabResultRepository struct {
	mock.Mock
}

func (m *mockLabResultRepository) Create(ctx context.Context, labResult *entity.LabResult) error {
	args := m.Called(ctx, labResult)
	return args.Error(0)
}

func (m *mockLabResultRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LabResult, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*entity.LabResult)
	return l, args.Error(1)
}

func (m *mockLabResultRepository) FindAll(ctx context.Context, filter *entity.LabResultFilter) ([]entity.LabResult, int64, error) {
	args := m.Called(ctx, filter)
	ls, _ := args.Get(0).([]entity.LabResult)
	return ls, args.Get(1).(int64), args.Error(2)
}

func (m *mockLabResultRepository) Update(ctx context.Context, labResult *entity.LabResult) (int64, error) {
	args := m.Called(ctx, labResult)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLabResultRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// auditRecorder keeps the actions it was asked to log.
type auditRecorder struct {
	mu      sync.Mutex
	actions []string
}

func (a *auditRecorder) LogCreate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) {
	a.record(action)
}

func (a *auditRecorder) LogUpdate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	a.record(action)
}

func (a *auditRecorder) LogDelete(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) {
	a.record(action)
}

func (a *auditRecorder) record(action string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
}

func (a *auditRecorder) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.actions...)
}

// memorySessionStore is an in-memory SessionStore keyed like the Redis one.
type memorySessionStore struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{keys: map[string]bool{}}
}

func (s *memorySessionStore) key(tokenType jwt.TokenType, userID uuid.UUID, tokenID string) string {
	return string(tokenType) + ":" + userID.String() + ":" + tokenID
}

func (s *memorySessionStore) Save(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[s.key(tokenType, userID, tokenID)] = true
	return nil
}

func (s *memorySessionStore) Exists(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[s.key(tokenType, userID, tokenID)], nil
}

func (s *memorySessionStore) Revoke(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, s.key(tokenType, userID, tokenID))
	return nil
}
