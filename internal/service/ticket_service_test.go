package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/simrs-labs/complaint-service/internal/domain"
	"github.com/simrs-labs/complaint-service/internal/events"
	"github.com/simrs-labs/complaint-service/internal/repository"
)

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
	seq     int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", r.seq)
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = time.Now()
	}
	ticket.UpdatedAt = ticket.CreatedAt
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) GetByReferenceKey(_ context.Context, key string) (*domain.Ticket, error) {
	for _, ticket := range r.tickets {
		if ticket.ReferenceKey == key {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.UnitID != nil && ticket.UnitID != *filter.UnitID {
			continue
		}
		result = append(result, *ticket)
	}
	return result, nil
}

func (r *fakeTicketRepo) ListEscalatable(_ context.Context, now time.Time, limit int) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.Status != domain.TicketStatusOpen && ticket.Status != domain.TicketStatusInProgress {
			continue
		}
		if ticket.EscalationDeadline == nil || !now.After(*ticket.EscalationDeadline) {
			continue
		}
		result = append(result, *ticket)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

type fakeMessageRepo struct {
	messages []domain.TicketMessage
	seq      int
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.TicketMessage) error {
	r.seq++
	msg.ID = fmt.Sprintf("msg-%d", r.seq)
	msg.CreatedAt = time.Now()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeMessageRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketMessage, error) {
	var result []domain.TicketMessage
	for _, msg := range r.messages {
		if msg.TicketID == ticketID {
			result = append(result, msg)
		}
	}
	return result, nil
}

type fakeHistoryRepo struct {
	entries []domain.TicketHistory
}

func (r *fakeHistoryRepo) Create(_ context.Context, entry *domain.TicketHistory) error {
	entry.ID = fmt.Sprintf("hist-%d", len(r.entries)+1)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketHistory, error) {
	var result []domain.TicketHistory
	for _, entry := range r.entries {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	return result, nil
}

type fakeUnitRepo struct {
	units map[string]domain.Unit
}

func (r *fakeUnitRepo) Create(_ context.Context, _ *domain.Unit) error { return nil }
func (r *fakeUnitRepo) Update(_ context.Context, _ *domain.Unit) error { return nil }

func (r *fakeUnitRepo) GetByID(_ context.Context, id string) (*domain.Unit, error) {
	unit, ok := r.units[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &unit, nil
}

func (r *fakeUnitRepo) ListActive(_ context.Context) ([]domain.Unit, error) {
	var result []domain.Unit
	for _, unit := range r.units {
		if unit.IsActive {
			result = append(result, unit)
		}
	}
	return result, nil
}

func (r *fakeUnitRepo) ListUnitTypes(_ context.Context) ([]domain.UnitType, error) {
	return nil, nil
}

type fakeCategoryRepo struct {
	categories map[string]domain.Category
}

func (r *fakeCategoryRepo) Create(_ context.Context, _ *domain.Category) error { return nil }
func (r *fakeCategoryRepo) Update(_ context.Context, _ *domain.Category) error { return nil }

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &category, nil
}

func (r *fakeCategoryRepo) ListActive(_ context.Context) ([]domain.Category, error) {
	return nil, nil
}

type fakePatientTypeRepo struct {
	patientTypes map[string]domain.PatientType
}

func (r *fakePatientTypeRepo) Create(_ context.Context, _ *domain.PatientType) error { return nil }
func (r *fakePatientTypeRepo) Update(_ context.Context, _ *domain.PatientType) error { return nil }

func (r *fakePatientTypeRepo) GetByID(_ context.Context, id string) (*domain.PatientType, error) {
	patientType, ok := r.patientTypes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &patientType, nil
}

func (r *fakePatientTypeRepo) ListActive(_ context.Context) ([]domain.PatientType, error) {
	return nil, nil
}

type fakeStaffRepo struct {
	members map[string]domain.StaffMember
}

func (r *fakeStaffRepo) Create(_ context.Context, _ *domain.StaffMember) error { return nil }
func (r *fakeStaffRepo) Update(_ context.Context, _ *domain.StaffMember) error { return nil }

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &member, nil
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	for _, member := range r.members {
		if member.Email == email {
			copied := member
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeStaffRepo) List(_ context.Context, _, _ int) ([]domain.StaffMember, error) {
	return nil, nil
}

func (r *fakeStaffRepo) ListActiveByUnit(_ context.Context, unitID string) ([]domain.StaffMember, error) {
	var result []domain.StaffMember
	for _, member := range r.members {
		if member.Active && member.UnitID != nil && *member.UnitID == unitID {
			result = append(result, member)
		}
	}
	return result, nil
}

type fakeSLARuleRepo struct {
	rules []domain.SLARule
}

func (r *fakeSLARuleRepo) Create(_ context.Context, rule *domain.SLARule) error {
	rule.ID = fmt.Sprintf("rule-%d", len(r.rules)+1)
	r.rules = append(r.rules, *rule)
	return nil
}

func (r *fakeSLARuleRepo) Update(_ context.Context, _ *domain.SLARule) error { return nil }
func (r *fakeSLARuleRepo) Delete(_ context.Context, _ string) error          { return nil }

func (r *fakeSLARuleRepo) GetByID(_ context.Context, id string) (*domain.SLARule, error) {
	for _, rule := range r.rules {
		if rule.ID == id {
			copied := rule
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeSLARuleRepo) List(_ context.Context) ([]domain.SLARule, error) {
	return append([]domain.SLARule{}, r.rules...), nil
}

func (r *fakeSLARuleRepo) ListActive(_ context.Context) ([]domain.SLARule, error) {
	var result []domain.SLARule
	for _, rule := range r.rules {
		if rule.IsActive {
			result = append(result, rule)
		}
	}
	return result, nil
}

type fixture struct {
	service *TicketService
	tickets *fakeTicketRepo
	msgs    *fakeMessageRepo
	history *fakeHistoryRepo
	rules   *fakeSLARuleRepo
}

func newFixture() *fixture {
	inpatient := "ut-inpatient"
	tickets := newFakeTicketRepo()
	msgs := &fakeMessageRepo{}
	history := &fakeHistoryRepo{}
	rules := &fakeSLARuleRepo{}

	units := &fakeUnitRepo{units: map[string]domain.Unit{
		"unit-icu": {ID: "unit-icu", UnitTypeID: inpatient, Name: "ICU", IsActive: true},
		"unit-old": {ID: "unit-old", UnitTypeID: inpatient, Name: "Closed ward", IsActive: false},
	}}
	categories := &fakeCategoryRepo{categories: map[string]domain.Category{
		"cat-facility": {ID: "cat-facility", Name: "Facility", IsActive: true},
	}}
	patientTypes := &fakePatientTypeRepo{patientTypes: map[string]domain.PatientType{
		"pt-insurance": {ID: "pt-insurance", Name: "Insurance", IsActive: true},
	}}
	unitID := "unit-icu"
	staff := &fakeStaffRepo{members: map[string]domain.StaffMember{
		"staff-agent": {ID: "staff-agent", Name: "Agent", Email: "agent@hospital.test", Role: domain.StaffRoleAgent, UnitID: &unitID, Active: true},
		"staff-admin": {ID: "staff-admin", Name: "Admin", Email: "admin@hospital.test", Role: domain.StaffRoleAdmin, Active: true},
	}}

	svc := NewTicketService(TicketDependencies{
		TicketRepo:      tickets,
		MessageRepo:     msgs,
		HistoryRepo:     history,
		UnitRepo:        units,
		CategoryRepo:    categories,
		PatientTypeRepo: patientTypes,
		StaffRepo:       staff,
		SLARuleRepo:     rules,
		Dispatcher:      events.NewInMemoryDispatcher(nil),
	})
	return &fixture{service: svc, tickets: tickets, msgs: msgs, history: history, rules: rules}
}

func approxTime(got, want time.Time) bool {
	diff := got.Sub(want)
	return diff > -2*time.Second && diff < 2*time.Second
}

func adminStaff() *domain.StaffMember {
	return &domain.StaffMember{ID: "staff-admin", Role: domain.StaffRoleAdmin, Active: true}
}

func TestCreateComplaintUsesMatchedRule(t *testing.T) {
	f := newFixture()
	inpatient := "ut-inpatient"
	f.rules.rules = []domain.SLARule{
		{
			ID: "rule-icu", Name: "icu high", UnitTypeID: &inpatient,
			PriorityLevel:       domain.TicketPriorityHigh,
			ResponseTimeHours:   1,
			ResolutionTimeHours: 8,
			IsActive:            true,
		},
	}

	ticket, err := f.service.CreateComplaint(context.Background(), ComplaintInput{
		ReporterName: "Budi",
		UnitID:       "unit-icu",
		CategoryID:   "cat-facility",
		Title:        "AC broken",
		Priority:     domain.TicketPriorityHigh,
	})
	if err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}
	if ticket.SLARuleID == nil || *ticket.SLARuleID != "rule-icu" {
		t.Fatalf("expected rule-icu to be stamped, got %v", ticket.SLARuleID)
	}
	if got := ticket.SLADeadline.Sub(ticket.ResponseDeadline); got != 7*time.Hour {
		t.Errorf("gap between response and resolution deadlines = %v, want 7h", got)
	}
	if !approxTime(ticket.ResponseDeadline, time.Now().Add(time.Hour)) {
		t.Errorf("response deadline = %v, want about 1h from now", ticket.ResponseDeadline)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Errorf("status = %s, want open", ticket.Status)
	}
	if ticket.ReferenceKey == "" {
		t.Error("reference key not generated")
	}
}

func TestCreateComplaintFallsBackToDefaults(t *testing.T) {
	f := newFixture()

	ticket, err := f.service.CreateComplaint(context.Background(), ComplaintInput{
		ReporterName: "Siti",
		UnitID:       "unit-icu",
		CategoryID:   "cat-facility",
		Title:        "Long queue",
	})
	if err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}
	if ticket.SLARuleID != nil {
		t.Errorf("default rule should not stamp a rule id, got %v", *ticket.SLARuleID)
	}
	if ticket.Priority != domain.TicketPriorityMedium {
		t.Errorf("priority = %s, want medium default", ticket.Priority)
	}
	if !approxTime(ticket.ResponseDeadline, time.Now().Add(4*time.Hour)) {
		t.Errorf("response deadline = %v, want about 4h from now", ticket.ResponseDeadline)
	}
	if !approxTime(ticket.SLADeadline, time.Now().Add(24*time.Hour)) {
		t.Errorf("sla deadline = %v, want about 24h from now", ticket.SLADeadline)
	}
	if ticket.EscalationDeadline != nil {
		t.Errorf("default rule has no escalation deadline, got %v", *ticket.EscalationDeadline)
	}
}

func TestCreateComplaintRejectsInactiveUnit(t *testing.T) {
	f := newFixture()
	_, err := f.service.CreateComplaint(context.Background(), ComplaintInput{
		ReporterName: "Budi",
		UnitID:       "unit-old",
		CategoryID:   "cat-facility",
		Title:        "Dirty room",
	})
	if err == nil {
		t.Fatal("expected error for inactive unit")
	}
}

func TestCreateComplaintRejectsUnknownPriority(t *testing.T) {
	f := newFixture()
	_, err := f.service.CreateComplaint(context.Background(), ComplaintInput{
		ReporterName: "Budi",
		UnitID:       "unit-icu",
		CategoryID:   "cat-facility",
		Title:        "Noise",
		Priority:     domain.TicketPriority("urgent"),
	})
	if err == nil {
		t.Fatal("expected error for unknown priority")
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    domain.TicketStatus
		to      domain.TicketStatus
		allowed bool
	}{
		{domain.TicketStatusOpen, domain.TicketStatusInProgress, true},
		{domain.TicketStatusOpen, domain.TicketStatusClosed, false},
		{domain.TicketStatusInProgress, domain.TicketStatusResolved, true},
		{domain.TicketStatusEscalated, domain.TicketStatusResolved, true},
		{domain.TicketStatusEscalated, domain.TicketStatusClosed, false},
		{domain.TicketStatusResolved, domain.TicketStatusClosed, true},
		{domain.TicketStatusResolved, domain.TicketStatusInProgress, true},
		{domain.TicketStatusClosed, domain.TicketStatusOpen, false},
		{domain.TicketStatusCancelled, domain.TicketStatusOpen, false},
	}
	for _, tc := range cases {
		if got := isValidTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("transition %s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestUpdateStatusStampsResolvedAt(t *testing.T) {
	f := newFixture()
	ticket, err := f.service.CreateComplaint(context.Background(), ComplaintInput{
		ReporterName: "Budi",
		UnitID:       "unit-icu",
		CategoryID:   "cat-facility",
		Title:        "Broken bed",
	})
	if err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}

	updated, err := f.service.UpdateStatus(context.Background(), adminStaff(), ticket.ID, domain.TicketStatusResolved, "fixed")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.ResolvedAt == nil {
		t.Fatal("ResolvedAt not stamped on resolve")
	}
	if len(f.history.entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(f.history.entries))
	}
	if f.history.entries[0].ChangeType != domain.ChangeTypeStatus {
		t.Errorf("history change type = %s", f.history.entries[0].ChangeType)
	}

	// Reopening clears the resolution timestamp.
	reopened, err := f.service.UpdateStatus(context.Background(), adminStaff(), ticket.ID, domain.TicketStatusInProgress, "not fixed after all")
	if err != nil {
		t.Fatalf("UpdateStatus reopen: %v", err)
	}
	if reopened.ResolvedAt != nil {
		t.Error("ResolvedAt should be cleared on reopen")
	}
}

func TestUpdatePriorityRestampsDeadlinesFromCreation(t *testing.T) {
	f := newFixture()
	inpatient := "ut-inpatient"
	f.rules.rules = []domain.SLARule{
		{
			ID: "rule-critical", Name: "inpatient critical", UnitTypeID: &inpatient,
			PriorityLevel:       domain.TicketPriorityCritical,
			ResponseTimeHours:   1,
			ResolutionTimeHours: 4,
			IsActive:            true,
		},
	}

	ticket, err := f.service.CreateComplaint(context.Background(), ComplaintInput{
		ReporterName: "Budi",
		UnitID:       "unit-icu",
		CategoryID:   "cat-facility",
		Title:        "Oxygen supply",
		Priority:     domain.TicketPriorityMedium,
	})
	if err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}
	if ticket.SLARuleID != nil {
		t.Fatal("medium complaint should use defaults")
	}

	updated, err := f.service.UpdatePriority(context.Background(), adminStaff(), ticket.ID, domain.TicketPriorityCritical)
	if err != nil {
		t.Fatalf("UpdatePriority: %v", err)
	}
	if updated.SLARuleID == nil || *updated.SLARuleID != "rule-critical" {
		t.Fatalf("expected rule-critical after priority change, got %v", updated.SLARuleID)
	}
	if want := ticket.CreatedAt.Add(4 * time.Hour); !updated.SLADeadline.Equal(want) {
		t.Errorf("sla deadline = %v, want %v anchored at creation", updated.SLADeadline, want)
	}

	var sawPriorityChange bool
	for _, entry := range f.history.entries {
		if entry.ChangeType == domain.ChangeTypePriority {
			sawPriorityChange = true
		}
	}
	if !sawPriorityChange {
		t.Error("priority change not recorded in history")
	}
}

func TestFirstPublicStaffReplyStampsFirstResponse(t *testing.T) {
	f := newFixture()
	ticket, err := f.service.CreateComplaint(context.Background(), ComplaintInput{
		ReporterName: "Budi",
		UnitID:       "unit-icu",
		CategoryID:   "cat-facility",
		Title:        "Cold food",
	})
	if err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}

	staff := adminStaff()
	if _, err := f.service.AddStaffMessage(context.Background(), staff, ticket.ID, domain.MessageTypeInternalNote, "checking with kitchen"); err != nil {
		t.Fatalf("AddStaffMessage note: %v", err)
	}
	stored, _ := f.tickets.GetByID(context.Background(), ticket.ID)
	if stored.FirstResponseAt != nil {
		t.Fatal("internal note must not stamp first response")
	}

	if _, err := f.service.AddStaffMessage(context.Background(), staff, ticket.ID, domain.MessageTypePublicReply, "we are on it"); err != nil {
		t.Fatalf("AddStaffMessage reply: %v", err)
	}
	stored, _ = f.tickets.GetByID(context.Background(), ticket.ID)
	if stored.FirstResponseAt == nil {
		t.Fatal("public reply should stamp first response")
	}
	first := *stored.FirstResponseAt

	if _, err := f.service.AddStaffMessage(context.Background(), staff, ticket.ID, domain.MessageTypePublicReply, "still on it"); err != nil {
		t.Fatalf("AddStaffMessage second reply: %v", err)
	}
	stored, _ = f.tickets.GetByID(context.Background(), ticket.ID)
	if !stored.FirstResponseAt.Equal(first) {
		t.Error("first response timestamp must not move on later replies")
	}
}

func TestAgentScopeLimitsListToOwnUnit(t *testing.T) {
	f := newFixture()
	for _, unitID := range []string{"unit-icu", "unit-icu", "unit-old"} {
		now := time.Now()
		_ = f.tickets.Create(context.Background(), &domain.Ticket{
			ReferenceKey:     "CMP-" + unitID + fmt.Sprint(f.tickets.seq),
			UnitID:           unitID,
			CategoryID:       "cat-facility",
			Status:           domain.TicketStatusOpen,
			Priority:         domain.TicketPriorityMedium,
			ResponseDeadline: now.Add(4 * time.Hour),
			SLADeadline:      now.Add(24 * time.Hour),
		})
	}

	unitID := "unit-icu"
	agent := &domain.StaffMember{ID: "staff-agent", Role: domain.StaffRoleAgent, UnitID: &unitID, Active: true}
	tickets, err := f.service.ListTickets(context.Background(), agent, TicketStaffFilter{})
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("agent sees %d tickets, want 2 from own unit", len(tickets))
	}

	all, err := f.service.ListTickets(context.Background(), adminStaff(), TicketStaffFilter{})
	if err != nil {
		t.Fatalf("ListTickets admin: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("admin sees %d tickets, want 3", len(all))
	}
}

func TestMarkEscalated(t *testing.T) {
	f := newFixture()
	now := time.Now()
	past := now.Add(-time.Hour)
	ticket := &domain.Ticket{
		ReferenceKey:       "CMP-ESCA0001",
		UnitID:             "unit-icu",
		CategoryID:         "cat-facility",
		Status:             domain.TicketStatusInProgress,
		Priority:           domain.TicketPriorityHigh,
		ResponseDeadline:   past,
		SLADeadline:        now.Add(2 * time.Hour),
		EscalationDeadline: &past,
	}
	if err := f.tickets.Create(context.Background(), ticket); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}

	if err := f.service.MarkEscalated(context.Background(), ticket); err != nil {
		t.Fatalf("MarkEscalated: %v", err)
	}
	stored, _ := f.tickets.GetByID(context.Background(), ticket.ID)
	if stored.Status != domain.TicketStatusEscalated {
		t.Fatalf("status = %s, want escalated", stored.Status)
	}
	if len(f.history.entries) != 1 || f.history.entries[0].ChangedByType != domain.AuthorTypeSystem {
		t.Fatal("escalation must record a system history entry")
	}

	// Already escalated tickets are left alone.
	if err := f.service.MarkEscalated(context.Background(), stored); err != nil {
		t.Fatalf("MarkEscalated repeat: %v", err)
	}
	if len(f.history.entries) != 1 {
		t.Error("repeat escalation should be a no-op")
	}
}

func TestReporterMessageRejectedOnClosedComplaint(t *testing.T) {
	f := newFixture()
	ticket, err := f.service.CreateComplaint(context.Background(), ComplaintInput{
		ReporterName: "Budi",
		UnitID:       "unit-icu",
		CategoryID:   "cat-facility",
		Title:        "Parking",
	})
	if err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}
	if _, err := f.service.UpdateStatus(context.Background(), adminStaff(), ticket.ID, domain.TicketStatusCancelled, "duplicate"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.service.AddReporterMessage(context.Background(), ticket.ReferenceKey, "any update?"); err == nil {
		t.Fatal("expected error posting to cancelled complaint")
	}
}

func TestTrackHidesInternalNotes(t *testing.T) {
	f := newFixture()
	ticket, err := f.service.CreateComplaint(context.Background(), ComplaintInput{
		ReporterName: "Budi",
		UnitID:       "unit-icu",
		CategoryID:   "cat-facility",
		Title:        "Billing dispute",
	})
	if err != nil {
		t.Fatalf("CreateComplaint: %v", err)
	}
	staff := adminStaff()
	if _, err := f.service.AddStaffMessage(context.Background(), staff, ticket.ID, domain.MessageTypeInternalNote, "looks like a duplicate"); err != nil {
		t.Fatalf("note: %v", err)
	}
	if _, err := f.service.AddStaffMessage(context.Background(), staff, ticket.ID, domain.MessageTypePublicReply, "we are reviewing your bill"); err != nil {
		t.Fatalf("reply: %v", err)
	}

	_, msgs, _, err := f.service.GetByReferenceKey(context.Background(), ticket.ReferenceKey)
	if err != nil {
		t.Fatalf("GetByReferenceKey: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("public view shows %d messages, want 1", len(msgs))
	}
	if msgs[0].MessageType != domain.MessageTypePublicReply {
		t.Errorf("public view leaked %s", msgs[0].MessageType)
	}
}
