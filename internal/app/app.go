package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/aulago/aulago/internal/config"
	"github.com/aulago/aulago/internal/module/chat"
	"github.com/aulago/aulago/internal/module/course"
	"github.com/aulago/aulago/internal/module/feedback"
	"github.com/aulago/aulago/internal/module/profile"
	"github.com/aulago/aulago/internal/module/task"
	"github.com/aulago/aulago/internal/query"
	"github.com/aulago/aulago/internal/session"
	"github.com/aulago/aulago/internal/transport"
)

// App holds the wired client: session store, query cache, one transport
// client per microservice, and the per-resource services and screens.
type App struct {
	cfg      *config.Config
	logger   *logger.Logger
	db       *gorm.DB
	resolver *query.Resolver

	Sessions *session.Store

	Courses  *course.Service
	Tasks    *task.Service
	Profile  *profile.Service
	Feedback *feedback.Service
	Chat     *chat.Service

	Browse  *course.BrowseScreen
	Account *profile.AccountScreen
	Inbox   *chat.InboxScreen
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the local store, the session, the query cache, the
// per-service transport clients, and the services and screens on top.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup the local store and load the persisted session.
	db, err := config.SetupStore(&cfg.Store, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup store: %w", err)
	}
	defer func() {
		if success {
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			slog.Error("store close error", slog.Any("error", err))
		}
	}()

	sessions, err := session.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	// 3. Query cache and resolver, shared by every module.
	cache := query.NewCache(cfg.Cache.TTLDuration(), cfg.Cache.EffectiveMaxEntries())
	resolver := query.NewResolver(cache, log.Logger)

	// 4. One transport client per microservice. The session store is the
	// token source; requests go out anonymously until a login persists one.
	timeout := cfg.HTTP.TimeoutDuration()
	retryInterval := cfg.HTTP.RetryIntervalDuration()
	courseClient := transport.New("course", cfg.Services.CourseURL, timeout, sessions, log.Logger, cfg.HTTP.RetryMax, retryInterval)
	profileClient := transport.New("profile", cfg.Services.ProfileURL, timeout, sessions, log.Logger, cfg.HTTP.RetryMax, retryInterval)
	chatClient := transport.New("chat", cfg.Services.ChatURL, timeout, sessions, log.Logger, cfg.HTTP.RetryMax, retryInterval)

	// 5. Manual dependency injection: api → service → screen.
	courseSvc := course.NewService(course.NewAPI(courseClient), resolver, log.Logger)
	taskSvc := task.NewService(task.NewAPI(courseClient), resolver, log.Logger)
	profileSvc := profile.NewService(profile.NewAPI(profileClient), resolver, sessions, log.Logger)
	feedbackSvc := feedback.NewService(feedback.NewAPI(courseClient, chatClient), resolver, log.Logger)
	chatSvc := chat.NewService(chat.NewAPI(chatClient), resolver, log.Logger)

	limit := cfg.HTTP.EffectivePageSize()

	success = true
	return &App{
		cfg:      cfg,
		logger:   log,
		db:       db,
		resolver: resolver,
		Sessions: sessions,
		Courses:  courseSvc,
		Tasks:    taskSvc,
		Profile:  profileSvc,
		Feedback: feedbackSvc,
		Chat:     chatSvc,
		Browse:   course.NewBrowseScreen(courseSvc, resolver, limit),
		Account:  profile.NewAccountScreen(profileSvc, resolver, limit),
		Inbox:    chat.NewInboxScreen(chatSvc, resolver, limit),
	}, nil
}

// Resolver exposes the shared resolver for building ad-hoc screens.
func (a *App) Resolver() *query.Resolver {
	return a.resolver
}

// WorkScreen builds the tasks/exams screen for one course. Screens scoped
// to a single entity are built on demand rather than held on the App.
func (a *App) WorkScreen(courseID string) *task.WorkScreen {
	return task.NewWorkScreen(a.Tasks, a.resolver, courseID, a.cfg.HTTP.EffectivePageSize())
}

// SubmissionsScreen builds the grading screen for one task.
func (a *App) SubmissionsScreen(taskID string) *task.SubmissionsScreen {
	return task.NewSubmissionsScreen(a.Tasks, a.resolver, taskID, a.cfg.HTTP.EffectivePageSize())
}

// ReviewsScreen builds the reviews screen for one course.
func (a *App) ReviewsScreen(courseID string) *feedback.ReviewsScreen {
	return feedback.NewReviewsScreen(a.Feedback, a.resolver, courseID, a.cfg.HTTP.EffectivePageSize())
}

// ThreadScreen builds the message screen for one conversation.
func (a *App) ThreadScreen(conversationID string) *chat.ThreadScreen {
	return chat.NewThreadScreen(a.Chat, a.resolver, conversationID, a.cfg.HTTP.EffectivePageSize())
}

// Close releases the local store and the logger.
func (a *App) Close() error {
	if a == nil {
		return nil
	}

	var errs []error

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("store close: %w", err))
			}
		}
	}

	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("logger close: %w", err))
		}
	}

	return errors.Join(errs...)
}
