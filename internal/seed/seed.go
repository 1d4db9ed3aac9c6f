// Package seed は初期データの投入を提供する。
// 管理者アカウントとサンプルコンテンツを空のデータベースに登録する。
// 既にデータが存在する場合は何もしない冪等な処理として設計されている。
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/sanggunian/internal/auth"
	"github.com/hitoshi/sanggunian/internal/model"
	"github.com/hitoshi/sanggunian/internal/repository"
)

// Seeder は初期データ投入処理を実行する。
type Seeder struct {
	users         repository.UserRepository
	officials     repository.OfficialRepository
	documents     repository.DocumentRepository
	hearings      repository.HearingRepository
	announcements repository.AnnouncementRepository
	committees    repository.CommitteeRepository
	logger        *slog.Logger
	nowFn         func() time.Time
}

// NewSeeder はSeederの新しいインスタンスを生成する。
func NewSeeder(
	users repository.UserRepository,
	officials repository.OfficialRepository,
	documents repository.DocumentRepository,
	hearings repository.HearingRepository,
	announcements repository.AnnouncementRepository,
	committees repository.CommitteeRepository,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		users:         users,
		officials:     officials,
		documents:     documents,
		hearings:      hearings,
		announcements: announcements,
		committees:    committees,
		logger:        logger,
		nowFn:         time.Now,
	}
}

// Run は管理者アカウントとサンプルコンテンツを投入する。
// 管理者はメールアドレスの重複時、コンテンツは既存レコードがある場合にスキップする。
func (s *Seeder) Run(ctx context.Context, adminEmail, adminPassword string) error {
	if err := s.seedAdmin(ctx, adminEmail, adminPassword); err != nil {
		return err
	}
	if err := s.seedContent(ctx); err != nil {
		return err
	}
	return nil
}

// seedAdmin は管理者アカウントを作成する。既に存在する場合はスキップする。
func (s *Seeder) seedAdmin(ctx context.Context, email, password string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("管理者アカウントの確認に失敗しました: %w", err)
	}
	if existing != nil {
		s.logger.Info("管理者アカウントは既に存在します", slog.String("email", email))
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := s.nowFn()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         "Administrator",
		Role:         model.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("管理者アカウントの作成に失敗しました: %w", err)
	}

	s.logger.Info("管理者アカウントを作成しました", slog.String("email", email))
	return nil
}

// seedContent はサンプルコンテンツを投入する。既存レコードがある場合はスキップする。
func (s *Seeder) seedContent(ctx context.Context) error {
	existing, err := s.officials.List(ctx)
	if err != nil {
		return fmt.Errorf("既存コンテンツの確認に失敗しました: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("コンテンツは既に存在するためサンプル投入をスキップします")
		return nil
	}

	now := s.nowFn()

	for _, o := range sampleOfficials(now) {
		if err := s.officials.Create(ctx, o); err != nil {
			return fmt.Errorf("サンプル議員の投入に失敗しました: %w", err)
		}
	}
	for _, c := range sampleCommittees(now) {
		if err := s.committees.Create(ctx, c); err != nil {
			return fmt.Errorf("サンプル委員会の投入に失敗しました: %w", err)
		}
	}
	for _, d := range sampleDocuments(now) {
		if err := s.documents.Create(ctx, d); err != nil {
			return fmt.Errorf("サンプル文書の投入に失敗しました: %w", err)
		}
	}
	for _, h := range sampleHearings(now) {
		if err := s.hearings.Create(ctx, h); err != nil {
			return fmt.Errorf("サンプル公聴会の投入に失敗しました: %w", err)
		}
	}
	for _, a := range sampleAnnouncements(now) {
		if err := s.announcements.Create(ctx, a); err != nil {
			return fmt.Errorf("サンプルお知らせの投入に失敗しました: %w", err)
		}
	}

	s.logger.Info("サンプルコンテンツを投入しました")
	return nil
}

func sampleOfficials(now time.Time) []*model.Official {
	return []*model.Official{
		{
			ID:        uuid.New().String(),
			Name:      "Hon. Ricardo M. Santos",
			Position:  "Municipal Vice Mayor",
			Committee: "Committee on Appropriations",
			Email:     "vicemayor@sanggunian.gov",
			Bio:       "Presiding officer of the Sangguniang Bayan.",
			Status:    model.OfficialStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.New().String(),
			Name:      "Hon. Maria L. Cruz",
			Position:  "Councilor",
			Committee: "Committee on Health and Sanitation",
			Email:     "m.cruz@sanggunian.gov",
			Bio:       "Chairperson of the Committee on Health and Sanitation.",
			Status:    model.OfficialStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.New().String(),
			Name:      "Hon. Jose P. Ramos",
			Position:  "Councilor",
			Committee: "Committee on Public Works",
			Email:     "j.ramos@sanggunian.gov",
			Status:    model.OfficialStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func sampleCommittees(now time.Time) []*model.Committee {
	return []*model.Committee{
		{
			ID:              uuid.New().String(),
			Name:            "Committee on Appropriations",
			Description:     "Reviews the annual budget and supplemental appropriations.",
			Chairman:        "Hon. Ricardo M. Santos",
			Members:         []string{"Hon. Maria L. Cruz", "Hon. Jose P. Ramos"},
			MeetingSchedule: "Every first Monday, 9:00 AM",
			Status:          model.CommitteeStatusActive,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			Name:            "Committee on Health and Sanitation",
			Description:     "Oversees public health programs and sanitation ordinances.",
			Chairman:        "Hon. Maria L. Cruz",
			Members:         []string{"Hon. Jose P. Ramos"},
			MeetingSchedule: "Every second Wednesday, 2:00 PM",
			Status:          model.CommitteeStatusActive,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
}

func sampleDocuments(now time.Time) []*model.Document {
	published := now.AddDate(0, -1, 0)
	return []*model.Document{
		{
			ID:              uuid.New().String(),
			Title:           "An Ordinance Regulating Public Markets",
			ReferenceNumber: "ORD-2026-001",
			Type:            model.DocumentTypeOrdinance,
			Author:          "Hon. Maria L. Cruz",
			Status:          model.DocumentStatusPublished,
			DateCreated:     published,
			DatePublished:   &published,
			Description:     "Sets operating hours and stall regulations for public markets.",
			Tags:            []string{"market", "regulation"},
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			Title:           "A Resolution Adopting the Annual Investment Plan",
			ReferenceNumber: "RES-2026-014",
			Type:            model.DocumentTypeResolution,
			Author:          "Hon. Ricardo M. Santos",
			Status:          model.DocumentStatusDraft,
			DateCreated:     now,
			Description:     "Adopts the annual investment plan for the fiscal year.",
			Tags:            []string{"budget"},
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
}

func sampleHearings(now time.Time) []*model.Hearing {
	return []*model.Hearing{
		{
			ID:           uuid.New().String(),
			Title:        "Public Hearing on the Proposed Market Ordinance",
			Description:  "Consultation with market vendors and residents.",
			Date:         now.AddDate(0, 0, 14),
			StartTime:    "09:00",
			Venue:        "Session Hall, Municipal Building",
			Status:       model.HearingStatusScheduled,
			Participants: []string{"Market Vendors Association", "Barangay Captains"},
			Agenda:       []string{"Presentation of draft ordinance", "Open forum"},
			Chairperson:  "Hon. Maria L. Cruz",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:          uuid.New().String(),
			Title:       "Budget Hearing for Fiscal Year 2026",
			Description: "Review of departmental budget proposals.",
			Date:        now.AddDate(0, -2, 0),
			StartTime:   "13:00",
			Venue:       "Session Hall, Municipal Building",
			Status:      model.HearingStatusCompleted,
			Chairperson: "Hon. Ricardo M. Santos",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

func sampleAnnouncements(now time.Time) []*model.Announcement {
	return []*model.Announcement{
		{
			ID:          uuid.New().String(),
			Title:       "Regular Session Schedule",
			Content:     "<p>The Sangguniang Bayan holds its regular session every Monday at 9:00 AM.</p>",
			Category:    model.AnnouncementCategoryMeeting,
			Priority:    model.AnnouncementPriorityMedium,
			Status:      model.AnnouncementStatusPublished,
			PublishDate: now,
			Author:      "Office of the Secretary",
			Featured:    true,
			Tags:        []string{"session"},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.New().String(),
			Title:       "Public Consultation on Waste Management",
			Content:     "<p>Residents are invited to the consultation on the proposed waste segregation ordinance.</p>",
			Category:    model.AnnouncementCategoryEvent,
			Priority:    model.AnnouncementPriorityHigh,
			Status:      model.AnnouncementStatusPublished,
			PublishDate: now,
			Author:      "Office of the Secretary",
			Tags:        []string{"environment", "consultation"},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
