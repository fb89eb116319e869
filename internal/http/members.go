package httpapp

import (
	"github.com/rest1/board/internal/i18n"
	"github.com/rest1/board/internal/rsdata"
)

// handleJoin godoc
//
//	@Summary		Join
//	@Description	Registers a new member. Usernames are unique.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			body	body		JoinRequest	true	"New member"
//	@Success		201		{object}	rsdata.RsData{data=JoinResponse}
//	@Failure		400		{object}	rsdata.RsData
//	@Failure		409		{object}	rsdata.RsData
//	@Router			/members/join [post]
func (s *Server) handleJoin(rq *rq) (response, error) {
	var req JoinRequest
	if err := s.decode(rq.r, &req); err != nil {
		return response{}, err
	}
	m, err := s.members.Join(rq.r.Context(), *req.Username, *req.Password, *req.Nickname)
	if err != nil {
		return response{}, err
	}
	return envelope(rsdata.OfData("201-1", s.tr.T(i18n.MsgJoined, m.Name()), JoinResponse{
		MemberDTO: newMemberDTO(m),
	})), nil
}

// handleLogin godoc
//
//	@Summary		Login
//	@Description	Checks the credentials and returns the member's API key.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			body	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	rsdata.RsData{data=LoginResponse}
//	@Failure		400		{object}	rsdata.RsData
//	@Failure		401		{object}	rsdata.RsData
//	@Router			/members/login [post]
func (s *Server) handleLogin(rq *rq) (response, error) {
	var req LoginRequest
	if err := s.decode(rq.r, &req); err != nil {
		return response{}, err
	}
	m, err := s.members.Login(rq.r.Context(), *req.Username, *req.Password)
	if err != nil {
		return response{}, err
	}
	return envelope(rsdata.OfData("200-1", s.tr.T(i18n.MsgLoggedIn, *req.Username), LoginResponse{
		MemberDTO: newMemberDTO(m),
		APIKey:    m.APIKey,
	})), nil
}

// handleMe godoc
//
//	@Summary	Current member
//	@Tags		Members
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	rsdata.RsData{data=MeResponse}
//	@Failure	401	{object}	rsdata.RsData
//	@Router		/members/me [get]
func (s *Server) handleMe(rq *rq) (response, error) {
	actor, err := rq.Actor()
	if err != nil {
		return response{}, err
	}
	return envelope(rsdata.OfData("200-1", s.tr.T(i18n.MsgOK), MeResponse{
		MemberDTO: newMemberDTO(actor),
	})), nil
}
