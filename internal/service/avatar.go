package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"syscall"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/rahulthapa9024/basic-app/internal/logger"
	"github.com/rahulthapa9024/basic-app/internal/model"
)

const (
	avatarKeyPrefix = "avatars/"
	// MaxAvatarBytes caps the size of a mirrored profile image.
	MaxAvatarBytes = 5 << 20
)

var (
	errUnsafePhotoURL = errors.New("photo url must be an absolute https url")
	errBlockedAddress = errors.New("photo host resolves to a non-public address")
)

// photoPolicy decides which origins may be fetched. The address check runs on
// every dial, so redirects and re-resolved hosts are covered as well.
type photoPolicy struct {
	schemes   []string
	allowAddr func(netip.Addr) bool
}

var publicHTTPS = photoPolicy{schemes: []string{"https"}, allowAddr: publicAddr}

var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

func publicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsValid() &&
		addr.IsGlobalUnicast() &&
		!addr.IsPrivate() &&
		!addr.IsLoopback() &&
		!addr.IsLinkLocalUnicast() &&
		!addr.IsUnspecified() &&
		!sharedAddressSpace.Contains(addr)
}

func (p photoPolicy) checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return errUnsafePhotoURL
	}
	for _, scheme := range p.schemes {
		if u.Scheme == scheme {
			return nil
		}
	}
	return errUnsafePhotoURL
}

func (p photoPolicy) control(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", errBlockedAddress, address)
	}
	addr, err := netip.ParseAddr(host)
	if err != nil || !p.allowAddr(addr) {
		return fmt.Errorf("%w: %s", errBlockedAddress, host)
	}
	return nil
}

// Avatar serves profile images from object storage, fetching them from the
// user's photo URL on a miss. A nil storage disables mirroring.
// Only https origins on public addresses are fetched.
type Avatar struct {
	storage model.Storage
	client  *http.Client
	policy  photoPolicy
	logger  *logger.Logger
}

func NewAvatar(storage model.Storage, logger *logger.Logger) *Avatar {
	return newAvatar(storage, publicHTTPS, logger)
}

func newAvatar(storage model.Storage, policy photoPolicy, logger *logger.Logger) *Avatar {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   policy.control,
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = time.Second
	rc.Logger = logger.Logger
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if errors.Is(err, errBlockedAddress) || errors.Is(err, errUnsafePhotoURL) {
			return false, err
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	rc.HTTPClient = &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: 5 * time.Second,
			MaxIdleConns:        16,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("too many photo redirects")
			}
			return policy.checkURL(req.URL.String())
		},
	}

	return &Avatar{storage: storage, client: rc.StandardClient(), policy: policy, logger: logger}
}

// Open returns the avatar of user. The caller closes the body.
func (s *Avatar) Open(ctx context.Context, user model.User) (model.Object, error) {
	if user.PhotoURL == "" {
		return model.Object{}, model.ErrNoPhoto
	}
	if err := s.policy.checkURL(user.PhotoURL); err != nil {
		s.logger.Warn("Avatar service: photo url rejected", "user_id", user.ID)
		return model.Object{}, fmt.Errorf("%w: %w", model.ErrNoPhoto, err)
	}

	key := avatarKeyPrefix + user.ID.String()

	if s.storage != nil {
		obj, err := s.storage.Get(ctx, key)
		if err == nil {
			return obj, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Warn("Avatar service: storage read failed, fetching origin",
				"user_id", user.ID,
				"error", err.Error())
		}
	}

	body, contentType, err := s.fetch(ctx, user.PhotoURL)
	if err != nil {
		s.logger.Error("Avatar service: failed to fetch photo",
			"user_id", user.ID,
			"error", err.Error())
		return model.Object{}, err
	}

	if s.storage != nil {
		if err := s.storage.Put(ctx, key, bytes.NewReader(body), int64(len(body)), contentType); err != nil {
			s.logger.Warn("Avatar service: failed to mirror photo",
				"user_id", user.ID,
				"error", err.Error())
		} else {
			s.logger.Debug("Avatar service: photo mirrored", "user_id", user.ID, "bytes", len(body))
		}
	}

	return model.Object{
		Body:        io.NopCloser(bytes.NewReader(body)),
		ContentType: contentType,
		Size:        int64(len(body)),
	}, nil
}

func (s *Avatar) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build photo request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("photo origin returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxAvatarBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read photo: %w", err)
	}
	if len(body) > MaxAvatarBytes {
		return nil, "", fmt.Errorf("photo exceeds %d bytes", MaxAvatarBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	return body, contentType, nil
}
