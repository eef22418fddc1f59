// Package store defines the persistence contract the rest of the service
// is written against. It exposes the storage collaborator's primitives:
// create-under-scope, field assignment, ordered append and soft delete,
// with every read filtered by the viewer's access scope.
package store

import (
	"context"
	"time"

	"github.com/Wizzel1/cuppl-sub000/internal/models"
	"github.com/Wizzel1/cuppl-sub000/internal/reminders"
)

// Store is the full persistence interface. The postgres implementation is
// the production backend; tests use hand-written fakes.
type Store interface {
	// Accounts
	CreateAccount(ctx context.Context, acc *models.Account) error
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	GetAccountByLogin(ctx context.Context, emailOrUsername string) (*models.Account, error)
	AccountExists(ctx context.Context, username, email string) (bool, error)

	// Couples and partner profiles
	CreateCouple(ctx context.Context, couple *models.Couple, creatorProfile *models.PartnerProfile) error
	GetCoupleByAccount(ctx context.Context, accountID string) (*models.Couple, error)
	GetCoupleByInviteToken(ctx context.Context, token string) (*models.Couple, error)
	AddProfile(ctx context.Context, profile *models.PartnerProfile) error
	UpdateProfile(ctx context.Context, profile *models.PartnerProfile) error
	SetInviteToken(ctx context.Context, coupleID string, token *string) error
	SetBackgroundPhoto(ctx context.Context, coupleID, photoURL string) error
	SoftDeleteCouple(ctx context.Context, coupleID string) error
	CoupleAccountIDs(ctx context.Context, coupleID string) ([]string, error)

	// Lists
	CreateList(ctx context.Context, list *models.List, scope models.AccessScope) error
	GetList(ctx context.Context, listID, viewerAccID string) (*models.List, error)
	ListLists(ctx context.Context, coupleID, viewerAccID string) ([]models.List, error)
	UpdateList(ctx context.Context, list *models.List) error
	SoftDeleteList(ctx context.Context, listID string) error

	// Items
	CreateItem(ctx context.Context, item *models.Item, scope models.AccessScope) error
	GetItem(ctx context.Context, itemID string) (*models.Item, error)
	GetItemForViewer(ctx context.Context, itemID, viewerAccID string) (*models.Item, error)
	ListItems(ctx context.Context, listID, viewerAccID string) ([]models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	SetItemCompleted(ctx context.Context, itemID string, completed bool) error
	SetNextTodoID(ctx context.Context, itemID string, nextID *string) error
	SetItemReminders(ctx context.Context, itemID string, first, second *string) error
	ItemCoupleID(ctx context.Context, itemID string) (string, error)
	SoftDeleteItem(ctx context.Context, itemID string) error

	// Reminders
	InsertReminder(ctx context.Context, r *models.Reminder) error
	DeleteReminder(ctx context.Context, reminderID string) error
	DueReminders(ctx context.Context, now time.Time, limit int) ([]reminders.DueReminder, error)
	ClearItemReminderHandle(ctx context.Context, itemID, handle string) error

	// Notifications
	InsertNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, accountID string, limit, offset int, unreadOnly bool) ([]models.Notification, error)
	UnreadCount(ctx context.Context, accountID string) (int, error)
	MarkNotificationRead(ctx context.Context, notificationID, accountID string, read bool) error
	MarkAllNotificationsRead(ctx context.Context, accountID string) error
}
