package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/repositories"
	"github.com/careerlens/careerlens/internal/storage"
	"github.com/careerlens/careerlens/internal/utils"
)

const MaxImageBytes = 5 << 20

type ImageKind string

const (
	ImageProfile ImageKind = "profile"
	ImageBanner  ImageKind = "banner"
)

// ImageUpload is an image file attached to a profile update.
type ImageUpload struct {
	Kind        ImageKind
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ProfileService interface {
	GetProfile(ctx context.Context, username string) (*models.ProfileView, error)
	UpdateProfile(ctx context.Context, username string, update models.ProfileUpdate, images ...ImageUpload) error
	DeleteAccount(ctx context.Context, username string) error
}

type profileService struct {
	users    repositories.UserRepository
	uploader storage.Uploader
	now      func() time.Time
	log      logrus.FieldLogger
}

func NewProfileService(users repositories.UserRepository, uploader storage.Uploader, log logrus.FieldLogger) ProfileService {
	return &profileService{users: users, uploader: uploader, now: time.Now, log: log}
}

func (s *profileService) GetProfile(ctx context.Context, username string) (*models.ProfileView, error) {
	const op = "ProfileService.GetProfile"

	username = normalizeUsername(username)
	if username == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Username is required.", nil)
	}

	v, err := s.users.GetProfile(ctx, username)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "User not found.", err)
		}
		return nil, utils.E(utils.CodeStore, op, "Failed to get profile.", err)
	}
	return v, nil
}

var (
	linkedInURL = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/(in|company)/[\w\-]+/?$`)
	gitHubURL   = regexp.MustCompile(`^https?://(www\.)?github\.com/[\w\-]+/?$`)
)

func validateProfileLinks(u models.ProfileUpdate) string {
	if u.LinkedIn != nil && *u.LinkedIn != "" && !linkedInURL.MatchString(strings.TrimSpace(*u.LinkedIn)) {
		return "Please enter a valid LinkedIn profile URL"
	}
	if u.GitHub != nil && *u.GitHub != "" && !gitHubURL.MatchString(strings.TrimSpace(*u.GitHub)) {
		return "Please enter a valid GitHub profile URL"
	}
	return ""
}

func (s *profileService) UpdateProfile(ctx context.Context, username string, update models.ProfileUpdate, images ...ImageUpload) error {
	const op = "ProfileService.UpdateProfile"

	username = normalizeUsername(username)
	if username == "" {
		return utils.E(utils.CodeInvalidArgument, op, "Username is required.", nil)
	}
	if msg := validateProfileLinks(update); msg != "" {
		return utils.E(utils.CodeInvalidArgument, op, msg, nil)
	}
	for _, img := range images {
		if msg := validateImage(img); msg != "" {
			return utils.E(utils.CodeInvalidArgument, op, msg, nil)
		}
	}

	// Images are stored before the profile write; make sure they have an owner.
	if len(images) > 0 {
		if _, err := s.users.GetUser(ctx, username); err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return utils.E(utils.CodeNotFound, op, "User not found.", err)
			}
			return utils.E(utils.CodeStore, op, "Failed to update profile.", err)
		}
	}

	for _, img := range images {
		path, err := s.storeImage(ctx, username, img)
		if err != nil {
			return utils.E(utils.CodeStore, op, "Failed to update profile.", err)
		}
		switch img.Kind {
		case ImageProfile:
			update.ProfileImage = &path
		case ImageBanner:
			update.BannerImage = &path
		}
	}

	ok, err := s.users.UpdateProfile(ctx, username, update.Fields())
	if err != nil {
		return utils.E(utils.CodeStore, op, "Failed to update profile.", err)
	}
	if !ok {
		return utils.E(utils.CodeNotFound, op, "User not found.", utils.ErrNotFound)
	}
	return nil
}

func validateImage(img ImageUpload) string {
	if img.Kind != ImageProfile && img.Kind != ImageBanner {
		return "Unknown image field."
	}
	if !strings.HasPrefix(strings.ToLower(img.ContentType), "image/") {
		return "Only image files are allowed"
	}
	if img.Size > MaxImageBytes {
		return "Image size should be less than 5MB"
	}
	return ""
}

var (
	unsafeNameChars = regexp.MustCompile(`(?i)[^a-z0-9]`)
	imageExt        = regexp.MustCompile(`^\.[a-z0-9]{1,5}$`)
)

// ImageObjectName names a stored image <username>-<kind>-<unix ms><ext>.
func ImageObjectName(username string, kind ImageKind, filename string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExt.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("%s-%s-%d%s", unsafeNameChars.ReplaceAllString(username, "_"), kind, at.UnixMilli(), ext)
}

func (s *profileService) storeImage(ctx context.Context, username string, img ImageUpload) (string, error) {
	if s.uploader == nil {
		return "", errors.New("image store is not configured")
	}
	name := ImageObjectName(username, img.Kind, img.Filename, s.now())
	path, err := s.uploader.Upload(ctx, name, img.ContentType, io.LimitReader(img.Body, MaxImageBytes+1), img.Size)
	if err != nil {
		return "", fmt.Errorf("upload %s image: %w", img.Kind, err)
	}
	s.log.WithFields(logrus.Fields{"username": username, "object": name}).Info("profile image stored")
	return path, nil
}

func (s *profileService) DeleteAccount(ctx context.Context, username string) error {
	const op = "ProfileService.DeleteAccount"

	username = normalizeUsername(username)
	if username == "" {
		return utils.E(utils.CodeInvalidArgument, op, "Username is required.", nil)
	}
	ok, err := s.users.DeleteUser(ctx, username)
	if err != nil {
		return utils.E(utils.CodeStore, op, "Failed to delete account.", err)
	}
	if !ok {
		return utils.E(utils.CodeNotFound, op, "User not found.", utils.ErrNotFound)
	}
	s.log.WithFields(logrus.Fields{"op": op, "username": username}).Info("account deleted")
	return nil
}
