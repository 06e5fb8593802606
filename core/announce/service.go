package announce

import (
	"context"
	"errors"
	"net/mail"

	"github.com/openschool/backend/core"
	"github.com/openschool/backend/core/user"
)

var ErrNotFound = errors.New("announcement not found")

type Service struct {
	store   core.Store
	userSvc *user.Service
	mailSvc core.EmailService
}

func NewService(store core.Store, userSvc *user.Service, mailSvc core.EmailService) *Service {
	return &Service{store: store, userSvc: userSvc, mailSvc: mailSvc}
}

func (svc *Service) All(ctx context.Context) ([]Announcement, error) {
	var announcements []Announcement
	if err := svc.store.Load(ctx, core.EntityAnnouncements, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// VisibleTo returns published announcements targeting role, in table order.
func (svc *Service) VisibleTo(ctx context.Context, role string) ([]Announcement, error) {
	announcements, err := svc.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Announcement, 0)
	for _, a := range announcements {
		if a.Published && a.VisibleToRole(role) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Publish flips the announcement to published and emails every active user
// whose role it targets. The email send is fire and forget.
func (svc *Service) Publish(ctx context.Context, id string) (Announcement, error) {
	announcements, err := svc.All(ctx)
	if err != nil {
		return Announcement{}, err
	}
	idx := -1
	for i := range announcements {
		if announcements[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Announcement{}, ErrNotFound
	}

	announcements[idx].Published = true
	if err := svc.store.Save(ctx, core.EntityAnnouncements, announcements); err != nil {
		return Announcement{}, err
	}
	ann := announcements[idx]

	svc.notify(ctx, ann)
	return ann, nil
}

func (svc *Service) notify(ctx context.Context, ann Announcement) {
	users, err := svc.userSvc.All(ctx)
	if err != nil {
		return
	}
	to := make([]mail.Address, 0)
	for _, usr := range users {
		if usr.IsActive && usr.Email != "" && ann.VisibleToRole(usr.Role) {
			to = append(to, mail.Address{Name: usr.DisplayName, Address: usr.Email})
		}
	}
	if len(to) == 0 {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      to,
		Subject: ann.Title,
		Body:    ann.Content,
	})
}
