package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"acadly.app/portal/internal/entity"
	notifRepo "acadly.app/portal/internal/modules/notification/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const unreadCountTTL = time.Hour

type NotificationService interface {
	// Notify creates a notification for one user. Failures are logged,
	// never returned: fan-out must not fail the triggering request.
	Notify(ctx context.Context, userID uuid.UUID, title, message string)
	// NotifyMany fans one message out to every recipient with a single
	// batched insert.
	NotifyMany(ctx context.Context, userIDs []uuid.UUID, title, message string)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, title, message string) {
	n := &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("failed to create notification for user %s: %v", userID, err)
		return
	}
	s.invalidateUnreadCount(ctx, userID)
}

func (s *notificationService) NotifyMany(ctx context.Context, userIDs []uuid.UUID, title, message string) {
	if len(userIDs) == 0 {
		return
	}

	batch := make([]entity.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		batch = append(batch, entity.Notification{
			UserID:  id,
			Title:   title,
			Message: message,
		})
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		log.Printf("failed to fan out notification to %d users: %v", len(userIDs), err)
		return
	}

	if s.redisClient != nil {
		pipe := s.redisClient.Pipeline()
		for _, id := range userIDs {
			pipe.Del(ctx, unreadCountKey(id))
		}
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("failed to invalidate unread counts: %v", err)
		}
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Notification, error) {
	return s.repo.ByUser(ctx, userID, limit)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.redisClient != nil {
		if val, err := s.redisClient.Get(ctx, unreadCountKey(userID)).Result(); err == nil {
			if count, err := strconv.ParseInt(val, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.redisClient != nil {
		if err := s.redisClient.Set(ctx, unreadCountKey(userID), count, unreadCountTTL).Err(); err != nil {
			log.Printf("failed to cache unread count for user %s: %v", userID, err)
		}
	}

	return count, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.MarkAsRead(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *notificationService) invalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, unreadCountKey(userID)).Err(); err != nil {
		log.Printf("failed to invalidate unread count for user %s: %v", userID, err)
	}
}

func unreadCountKey(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:unread:%s", userID)
}
