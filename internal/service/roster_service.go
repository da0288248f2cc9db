package service

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/boleta-api/internal/models"
	"github.com/noah-isme/boleta-api/pkg/cache"
)

// PlaceholderName substitutes any supplementary display name whose fetch
// failed. Rendering always continues.
const PlaceholderName = "N/A"

type rosterRepository interface {
	FindStudent(ctx context.Context, id string) (*models.Student, error)
	FindClassroom(ctx context.Context, id string) (*models.Classroom, error)
	FindPersonName(ctx context.Context, id string) (string, error)
}

// RosterService resolves the display names printed on a boleta. The
// lookups are independent network fetches: they run concurrently, each
// degrades on its own to a placeholder, and results arriving after the
// caller's context is cancelled are discarded.
type RosterService struct {
	repo    rosterRepository
	cache   *redis.Client
	metrics *MetricsService
	logger  *zap.Logger
	ttl     time.Duration
	timeout time.Duration
}

// NewRosterService constructs the roster service. The cache client may be
// nil, in which case every lookup goes to the repository.
func NewRosterService(repo rosterRepository, cache *redis.Client, metrics *MetricsService, logger *zap.Logger, ttl, timeout time.Duration) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &RosterService{repo: repo, cache: cache, metrics: metrics, logger: logger, ttl: ttl, timeout: timeout}
}

// StudentClassroom returns the classroom record for a student, or nil
// when either hop fails. Used for level classification; a nil classroom
// maps to the "no se pudo determinar el salón" warning.
func (s *RosterService) StudentClassroom(ctx context.Context, studentID string) *models.Classroom {
	student, err := s.repo.FindStudent(ctx, studentID)
	if err != nil || student.ClassroomID == nil {
		if err != nil {
			s.logger.Warn("student lookup failed", zap.String("student_id", studentID), zap.Error(err))
		}
		return nil
	}
	classroom, err := s.repo.FindClassroom(ctx, *student.ClassroomID)
	if err != nil {
		s.logger.Warn("classroom lookup failed", zap.String("classroom_id", *student.ClassroomID), zap.Error(err))
		return nil
	}
	return classroom
}

// Supplementary fetches the display names for rendering. Each field
// degrades independently; a failure never aborts the other fetches or
// the overall render.
func (s *RosterService) Supplementary(ctx context.Context, studentID string) models.SupplementaryInfo {
	info := models.SupplementaryInfo{
		StudentName:   PlaceholderName,
		ClassroomName: PlaceholderName,
		TeacherName:   PlaceholderName,
		ParentName:    PlaceholderName,
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	student, err := s.repo.FindStudent(fetchCtx, studentID)
	if err != nil {
		s.recordFailure("student", studentID, err)
		return info
	}
	if student.FullName != "" {
		info.StudentName = student.FullName
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	if student.ClassroomID != nil {
		wg.Add(1)
		go func(classroomID string) {
			defer wg.Done()
			classroom, err := s.repo.FindClassroom(fetchCtx, classroomID)
			if err != nil {
				s.recordFailure("classroom", classroomID, err)
				return
			}
			teacherName := ""
			if classroom.TeacherID != nil {
				teacherName = s.displayName(fetchCtx, *classroom.TeacherID)
			}
			mu.Lock()
			defer mu.Unlock()
			if fetchCtx.Err() != nil {
				// The consumer is gone; do not apply stale results.
				return
			}
			if classroom.DisplayName != "" {
				info.ClassroomName = classroom.DisplayName
			}
			if teacherName != "" {
				info.TeacherName = teacherName
			}
		}(*student.ClassroomID)
	}

	if student.ParentID != nil {
		wg.Add(1)
		go func(parentID string) {
			defer wg.Done()
			name := s.displayName(fetchCtx, parentID)
			mu.Lock()
			defer mu.Unlock()
			if fetchCtx.Err() != nil {
				return
			}
			if name != "" {
				info.ParentName = name
			}
		}(*student.ParentID)
	}

	wg.Wait()
	return info
}

// displayName resolves a person id to a display name through the cache,
// returning "" on failure.
func (s *RosterService) displayName(ctx context.Context, personID string) string {
	key := cache.Key("roster", "name", personID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			s.metrics.RecordRosterCache(true)
			return cached
		}
		s.metrics.RecordRosterCache(false)
	}

	name, err := s.repo.FindPersonName(ctx, personID)
	if err != nil {
		s.recordFailure("person", personID, err)
		return ""
	}
	if s.cache != nil && name != "" {
		if err := s.cache.Set(ctx, key, name, s.ttl).Err(); err != nil {
			s.logger.Debug("roster cache write failed", zap.Error(err))
		}
	}
	return name
}

func (s *RosterService) recordFailure(kind, id string, err error) {
	s.metrics.RecordRosterLookupFailure()
	s.logger.Warn("roster lookup degraded to placeholder",
		zap.String("kind", kind),
		zap.String("id", id),
		zap.Error(err),
	)
}
