package handler

import (
	"bufio"
	"errors"
	"io"
	"net/http"

	"github.com/napowa/napowa-server/internal/api/http/respond"
	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

// multipartOverhead leaves room for boundaries and part headers on top of
// the file itself.
const multipartOverhead = 64 << 10

// Member serves the signed-in member's account and admin user lookups.
type Member struct {
	memberService  MemberService
	contextManager model.ContextManager
	maxAvatarBytes int64
	logger         *logger.Logger
}

// NewMember creates a new Member handler.
func NewMember(memberService MemberService, contextManager model.ContextManager, maxAvatarBytes int64, logger *logger.Logger) *Member {
	return &Member{
		memberService:  memberService,
		contextManager: contextManager,
		maxAvatarBytes: maxAvatarBytes,
		logger:         logger,
	}
}

// Me handles GET /api/me.
func (h *Member) Me(w http.ResponseWriter, r *http.Request) {
	identity, err := currentIdentity(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	member, err := h.memberService.Get(r.Context(), identity.UserID)
	if err != nil {
		// The token outlived its account.
		var apiErr *apierrors.APIError
		if errors.As(err, &apiErr) && apiErr.Kind == apierrors.KindNotFound {
			err = apierrors.NewErrInvalidAuthorizationToken()
		}
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, newMemberResponse(member))
}

// GetUser handles GET /api/users/{id}.
func (h *Member) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	member, err := h.memberService.Get(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, newMemberResponse(member))
}

// UpdateProfile handles PATCH /api/me/profile.
func (h *Member) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, err := currentIdentity(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var req profileUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	profile, err := h.memberService.UpdateProfile(r.Context(), identity.UserID, req.update())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, newProfileResponse(profile))
}

// SetTwoFactor handles PUT /api/me/two-factor.
func (h *Member) SetTwoFactor(w http.ResponseWriter, r *http.Request) {
	identity, err := currentIdentity(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var req twoFactorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if req.Enabled == nil {
		handleError(w, r, h.logger, apierrors.NewErrValidation(map[string]string{"enabled": "is required"}))
		return
	}

	if err := h.memberService.SetTwoFactor(r.Context(), identity.UserID, *req.Enabled); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadAvatar handles PUT /api/me/avatar with a multipart "avatar" part.
// The content type is sniffed from the file rather than trusted from the client.
func (h *Member) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	identity, err := currentIdentity(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxAvatarBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxAvatarBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handleError(w, r, h.logger, apierrors.NewErrValidation(map[string]string{"avatar": "file is too large"}))
			return
		}
		handleError(w, r, h.logger, apierrors.NewErrBadRequest("request body must be multipart/form-data"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("avatar")
	if err != nil {
		handleError(w, r, h.logger, apierrors.NewErrValidation(map[string]string{"avatar": "is required"}))
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxAvatarBytes {
		handleError(w, r, h.logger, apierrors.NewErrValidation(map[string]string{"avatar": "file is too large"}))
		return
	}

	br := bufio.NewReaderSize(file, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		handleError(w, r, h.logger, apierrors.NewErrBadRequest("failed to read avatar"))
		return
	}
	contentType := http.DetectContentType(head)

	key, err := h.memberService.UploadAvatar(r.Context(), identity.UserID, br, header.Size, contentType)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, avatarResponse{AvatarKey: key})
}

// Avatar handles GET /api/me/avatar.
func (h *Member) Avatar(w http.ResponseWriter, r *http.Request) {
	identity, err := currentIdentity(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	rc, contentType, err := h.memberService.Avatar(r.Context(), identity.UserID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("Member handler: avatar stream interrupted", "user_id", identity.UserID, "error", err.Error())
	}
}
