package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"opportunity_followup_reminders/internal/domain/email"
	"opportunity_followup_reminders/internal/domain/opportunity"
	"opportunity_followup_reminders/internal/domain/profile"
	"opportunity_followup_reminders/internal/domain/reminder"
	idb "opportunity_followup_reminders/internal/infra/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReminderService defines the reminder sweep entry point. It is invoked by
// the cron scheduler and by the internal HTTP surface for manual runs.
type ReminderService interface {
	// RunReminders executes one sweep over all candidate opportunities and
	// returns the per-tier send counts and any per-opportunity errors.
	RunReminders(ctx context.Context) (*reminder.Result, error)
}

// ReminderServiceImpl implements the ReminderService interface.
type ReminderServiceImpl struct {
	oppRepo      opportunity.Repository
	profileRepo  profile.Repository
	reminderRepo reminder.Repository
	sender       email.Sender
	logger       *logrus.Logger
	baseURL      string
	ledgerPolicy reminder.WritePolicy
}

func NewReminderService(
	or opportunity.Repository,
	pr profile.Repository,
	rr reminder.Repository,
	sender email.Sender,
	logger *logrus.Logger,
	baseURL string,
	ledgerPolicy reminder.WritePolicy,
) *ReminderServiceImpl {
	return &ReminderServiceImpl{
		oppRepo:      or,
		profileRepo:  pr,
		reminderRepo: rr,
		sender:       sender,
		logger:       logger,
		baseURL:      strings.TrimRight(baseURL, "/"),
		ledgerPolicy: ledgerPolicy,
	}
}

// reminderPayload carries the opportunity details rendered into the emails.
type reminderPayload struct {
	CompanyName string
	ContactName string
}

// RunReminders finds assigned opportunities with sales_status='new' that are
// not handled and sends day1/day3/day7_escalation reminders at most once per
// tier, recording each send in the dedup ledger.
func (s *ReminderServiceImpl) RunReminders(ctx context.Context) (*reminder.Result, error) {
	now := time.Now()
	result := &reminder.Result{}

	opps, err := s.oppRepo.ListAssignedNew(ctx)
	if err != nil {
		// Treated as "no candidates": the next interval retries from
		// scratch, nothing is persisted about the failed sweep.
		s.logger.Errorf("reminder sweep: listing candidate opportunities failed: %v", err)
		return result, nil
	}
	if len(opps) == 0 {
		return result, nil
	}

	escalationIDs := s.resolveEscalationRecipients(ctx)

	for _, opp := range opps {
		if !opp.AssignedTo.Valid {
			continue
		}
		assigneeID := opp.AssignedTo.UUID

		if s.isHandled(ctx, opp.ID, assigneeID) {
			continue
		}

		assignedAt, ok := s.assignmentTime(ctx, opp)
		if !ok {
			// No assignment instant at all: cannot be scheduled.
			continue
		}
		ageDays := now.Sub(assignedAt).Hours() / 24

		payload := reminderPayload{
			CompanyName: nullStringOr(opp.CompanyName, "Onbekend"),
			ContactName: nullStringOr(opp.ContactName, ""),
		}

		for _, rule := range reminder.Rules() {
			if ageDays < rule.ThresholdDays {
				continue
			}

			exists, err := s.reminderRepo.Exists(ctx, opp.ID, rule.Tier)
			if err != nil {
				// Skipping the tier is safer than risking a double send.
				result.Errors = append(result.Errors, sweepError(opp.ID, rule.Tier, err))
				continue
			}
			if exists {
				continue
			}

			anySent := false
			if rule.Escalate {
				escSent := s.sendEscalationToManagers(ctx, escalationIDs, opp.ID, payload, nullStringOr(opp.AssignedToName, "Onbekend"), int(rule.ThresholdDays))
				assigneeSent := s.sendReminderToAssignee(ctx, assigneeID, opp.ID, payload, rule.Tier)
				anySent = assigneeSent || escSent > 0
			} else {
				anySent = s.sendReminderToAssignee(ctx, assigneeID, opp.ID, payload, rule.Tier)
			}

			if s.ledgerPolicy == reminder.WriteOnSuccess && !anySent {
				s.logger.Infof("reminder %s for opportunity %s: no email delivered, ledger write skipped (success-only policy)", rule.Tier, opp.ID)
				continue
			}

			err = s.reminderRepo.Create(ctx, &reminder.Record{
				OpportunityID:  opp.ID,
				AssigneeUserID: assigneeID,
				Tier:           rule.Tier,
			})
			if err != nil {
				if errors.Is(err, idb.ErrDuplicateReminder) {
					// Lost a race against a concurrent sweep; the
					// constraint says it was already sent.
					s.logger.Warnf("reminder %s for opportunity %s already recorded, treating as sent", rule.Tier, opp.ID)
					continue
				}
				result.Errors = append(result.Errors, sweepError(opp.ID, rule.Tier, err))
				continue
			}
			result.Add(rule.Tier)
		}
	}

	return result, nil
}

// assignmentTime resolves the instant the opportunity was assigned:
// assigned_at when present, otherwise the latest assignment action.
func (s *ReminderServiceImpl) assignmentTime(ctx context.Context, opp *opportunity.Opportunity) (time.Time, bool) {
	if opp.AssignedAt.Valid {
		return opp.AssignedAt.Time, true
	}
	action, err := s.oppRepo.LatestAssignmentAction(ctx, opp.ID)
	if err != nil {
		if !errors.Is(err, idb.ErrAssignmentActionNotFound) {
			s.logger.Warnf("latest assignment action lookup for opportunity %s failed: %v", opp.ID, err)
		}
		return time.Time{}, false
	}
	return action.CreatedAt, true
}

// isHandled reports whether the opportunity no longer needs reminders: its
// status has progressed past 'new' (re-read, not taken from the candidate
// list) or its assignee completed the follow-up task. Lookup failures are
// logged and treated as "not handled".
func (s *ReminderServiceImpl) isHandled(ctx context.Context, opportunityID, assigneeUserID uuid.UUID) bool {
	status, err := s.oppRepo.GetSalesStatus(ctx, opportunityID)
	if err != nil {
		s.logger.Warnf("sales status re-read for opportunity %s failed: %v", opportunityID, err)
	} else if status != opportunity.SalesStatusNew {
		return true
	}

	done, err := s.oppRepo.HasDoneFollowUpTask(ctx, opportunityID, assigneeUserID)
	if err != nil {
		s.logger.Warnf("follow-up task check for opportunity %s failed: %v", opportunityID, err)
		return false
	}
	return done
}

// resolveEscalationRecipients computes the user IDs that receive day-7
// escalations: every admin plus every profile whose role name contains
// "manager". Recomputed each sweep; lookup failures yield an empty list so
// the assignee reminder still goes out on its own.
func (s *ReminderServiceImpl) resolveEscalationRecipients(ctx context.Context) []uuid.UUID {
	profiles, err := s.profileRepo.ListAll(ctx)
	if err != nil {
		s.logger.Warnf("profile listing for escalation recipients failed: %v", err)
		return nil
	}
	if len(profiles) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]bool)
	var roleIDs []uuid.UUID
	for _, p := range profiles {
		if p.RoleID.Valid && !seen[p.RoleID.UUID] {
			seen[p.RoleID.UUID] = true
			roleIDs = append(roleIDs, p.RoleID.UUID)
		}
	}

	roleNameByID := make(map[uuid.UUID]string)
	if len(roleIDs) > 0 {
		roles, err := s.profileRepo.ListRolesByIDs(ctx, roleIDs)
		if err != nil {
			s.logger.Warnf("role lookup for escalation recipients failed: %v", err)
		} else {
			for _, r := range roles {
				roleNameByID[r.ID] = strings.ToLower(r.Name)
			}
		}
	}

	var recipients []uuid.UUID
	for _, p := range profiles {
		roleName := ""
		if p.RoleID.Valid {
			roleName = roleNameByID[p.RoleID.UUID]
		}
		if p.IsAdmin || strings.Contains(roleName, "manager") {
			recipients = append(recipients, p.ID)
		}
	}
	return recipients
}

// sendReminderToAssignee sends a day1/day3/day7 reminder email to the
// opportunity's assignee. Returns false on any failure; nothing propagates.
func (s *ReminderServiceImpl) sendReminderToAssignee(ctx context.Context, userID, opportunityID uuid.UUID, payload reminderPayload, tier reminder.Tier) bool {
	var subject, days string
	if tier == reminder.TierDay3 {
		subject = fmt.Sprintf("Herinnering: kans nog niet bijgewerkt – %s", payload.CompanyName)
		days = "3"
	} else {
		subject = fmt.Sprintf("Herinnering: volg kans – %s", payload.CompanyName)
		days = "1"
	}
	url := fmt.Sprintf("%s/admin/opportunities/%s#status", s.baseURL, opportunityID)
	html := fmt.Sprintf(`
    <p>Deze kans is %s dag(en) geleden aan jou toegewezen en heeft nog status "Nieuw".</p>
    <p><strong>%s</strong> – %s</p>
    <p><a href="%s">Update de status van deze kans</a></p>
  `, days, payload.CompanyName, payload.ContactName, url)

	prof, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Errorf("reminder email for opportunity %s failed: assignee profile %s: %v", opportunityID, userID, err)
		return false
	}
	if !prof.Email.Valid || prof.Email.String == "" {
		s.logger.Warnf("reminder email for opportunity %s skipped: assignee %s has no email address", opportunityID, userID)
		return false
	}

	if err := s.sender.Send(ctx, email.Message{To: prof.Email.String, Subject: subject, HTML: html}); err != nil {
		s.logger.Errorf("reminder email to %s for opportunity %s failed: %v", prof.Email.String, opportunityID, err)
		return false
	}
	return true
}

// sendEscalationToManagers fans the day-7 escalation email out to the
// manager/admin list sequentially. A failure for one recipient is logged and
// does not stop attempts to the rest. Returns the number of successful sends.
func (s *ReminderServiceImpl) sendEscalationToManagers(ctx context.Context, recipientUserIDs []uuid.UUID, opportunityID uuid.UUID, payload reminderPayload, assigneeName string, daysStale int) int {
	url := fmt.Sprintf("%s/admin/opportunities/%s", s.baseURL, opportunityID)
	subject := fmt.Sprintf("Escalatie: kans niet bijgewerkt na %d dagen – %s", daysStale, payload.CompanyName)
	html := fmt.Sprintf(`
    <p>Deze kans is na %d dagen nog niet bijgewerkt.</p>
    <p><strong>Toegewezen aan:</strong> %s</p>
    <p><strong>Kans:</strong> %s – %s</p>
    <p><a href="%s">Bekijk kans</a></p>
  `, daysStale, assigneeName, payload.CompanyName, payload.ContactName, url)

	sent := 0
	for _, userID := range recipientUserIDs {
		prof, err := s.profileRepo.GetByID(ctx, userID)
		if err != nil {
			s.logger.Errorf("escalation email for opportunity %s failed: profile %s: %v", opportunityID, userID, err)
			continue
		}
		if !prof.Email.Valid || prof.Email.String == "" {
			continue
		}
		if err := s.sender.Send(ctx, email.Message{To: prof.Email.String, Subject: subject, HTML: html}); err != nil {
			s.logger.Errorf("escalation email to %s for opportunity %s failed: %v", prof.Email.String, opportunityID, err)
			continue
		}
		sent++
	}
	return sent
}

func sweepError(opportunityID uuid.UUID, tier reminder.Tier, err error) reminder.SweepError {
	return reminder.SweepError{OpportunityID: opportunityID, Tier: tier, Message: err.Error()}
}

func nullStringOr(v sql.NullString, fallback string) string {
	if v.Valid && v.String != "" {
		return v.String
	}
	return fallback
}
