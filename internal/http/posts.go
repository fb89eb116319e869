package httpapp

import (
	"github.com/rest1/board/internal/i18n"
	"github.com/rest1/board/internal/rsdata"
)

// handleListPosts godoc
//
//	@Summary	List posts
//	@Tags		Posts
//	@Produce	json
//	@Success	200	{array}	PostDTO
//	@Router		/posts [get]
func (s *Server) handleListPosts(rq *rq) (response, error) {
	posts, err := s.posts.List(rq.r.Context())
	if err != nil {
		return response{}, err
	}
	dtos := make([]PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, newPostDTO(p))
	}
	return bare(dtos), nil
}

// handleGetPost godoc
//
//	@Summary	Get a post
//	@Tags		Posts
//	@Produce	json
//	@Param		postID	path		int	true	"Post id"
//	@Success	200		{object}	PostDTO
//	@Failure	404
//	@Router		/posts/{postID} [get]
func (s *Server) handleGetPost(rq *rq) (response, error) {
	id, err := pathID(rq.r, "postID")
	if err != nil {
		return response{}, err
	}
	p, err := s.posts.Get(rq.r.Context(), id)
	if err != nil {
		return response{}, err
	}
	return bare(newPostDTO(p)), nil
}

// handleWritePost godoc
//
//	@Summary	Write a post
//	@Tags		Posts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		PostWriteRequest	true	"Post"
//	@Success	201		{object}	rsdata.RsData{data=PostWriteResponse}
//	@Failure	400		{object}	rsdata.RsData
//	@Failure	401		{object}	rsdata.RsData
//	@Router		/posts [post]
func (s *Server) handleWritePost(rq *rq) (response, error) {
	var req PostWriteRequest
	if err := s.decode(rq.r, &req); err != nil {
		return response{}, err
	}
	actor, err := rq.Actor()
	if err != nil {
		return response{}, err
	}
	p, err := s.posts.Write(rq.r.Context(), actor, *req.Title, *req.Content)
	if err != nil {
		return response{}, err
	}
	return envelope(rsdata.OfData("201-1", s.tr.T(i18n.MsgPostCreated, formatID(p.ID)), PostWriteResponse{
		PostDTO: newPostDTO(p),
	})), nil
}

// handleModifyPost godoc
//
//	@Summary	Modify a post
//	@Tags		Posts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		postID	path		int					true	"Post id"
//	@Param		body	body		PostWriteRequest	true	"New title and content"
//	@Success	200		{object}	rsdata.RsData
//	@Failure	400		{object}	rsdata.RsData
//	@Failure	401		{object}	rsdata.RsData
//	@Failure	403		{object}	rsdata.RsData
//	@Failure	404
//	@Router		/posts/{postID} [put]
func (s *Server) handleModifyPost(rq *rq) (response, error) {
	var req PostWriteRequest
	if err := s.decode(rq.r, &req); err != nil {
		return response{}, err
	}
	actor, err := rq.Actor()
	if err != nil {
		return response{}, err
	}
	id, err := pathID(rq.r, "postID")
	if err != nil {
		return response{}, err
	}
	p, err := s.posts.Modify(rq.r.Context(), actor, id, *req.Title, *req.Content)
	if err != nil {
		return response{}, err
	}
	return envelope(rsdata.Of("200-1", s.tr.T(i18n.MsgPostModified, formatID(p.ID)))), nil
}

// handleDeletePost godoc
//
//	@Summary		Delete a post
//	@Description	Deletes the post and all of its comments.
//	@Tags			Posts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			postID	path		int	true	"Post id"
//	@Success		200		{object}	rsdata.RsData
//	@Failure		401		{object}	rsdata.RsData
//	@Failure		403		{object}	rsdata.RsData
//	@Failure		404
//	@Router			/posts/{postID} [delete]
func (s *Server) handleDeletePost(rq *rq) (response, error) {
	actor, err := rq.Actor()
	if err != nil {
		return response{}, err
	}
	id, err := pathID(rq.r, "postID")
	if err != nil {
		return response{}, err
	}
	p, err := s.posts.Delete(rq.r.Context(), actor, id)
	if err != nil {
		return response{}, err
	}
	return envelope(rsdata.Of("200-1", s.tr.T(i18n.MsgPostDeleted, formatID(p.ID)))), nil
}
