package httpapp

import (
	"github.com/rest1/board/internal/i18n"
	"github.com/rest1/board/internal/rsdata"
)

// handleListComments godoc
//
//	@Summary	List a post's comments
//	@Tags		Comments
//	@Produce	json
//	@Param		postID	path	int	true	"Post id"
//	@Success	200		{array}	CommentDTO
//	@Failure	404
//	@Router		/posts/{postID}/comments [get]
func (s *Server) handleListComments(rq *rq) (response, error) {
	postID, err := pathID(rq.r, "postID")
	if err != nil {
		return response{}, err
	}
	comments, err := s.posts.ListComments(rq.r.Context(), postID)
	if err != nil {
		return response{}, err
	}
	dtos := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, newCommentDTO(c))
	}
	return bare(dtos), nil
}

// handleGetComment godoc
//
//	@Summary	Get a comment
//	@Tags		Comments
//	@Produce	json
//	@Param		postID		path		int	true	"Post id"
//	@Param		commentID	path		int	true	"Comment id"
//	@Success	200			{object}	CommentDTO
//	@Failure	404
//	@Router		/posts/{postID}/comments/{commentID} [get]
func (s *Server) handleGetComment(rq *rq) (response, error) {
	postID, err := pathID(rq.r, "postID")
	if err != nil {
		return response{}, err
	}
	commentID, err := pathID(rq.r, "commentID")
	if err != nil {
		return response{}, err
	}
	c, err := s.posts.GetComment(rq.r.Context(), postID, commentID)
	if err != nil {
		return response{}, err
	}
	return bare(newCommentDTO(c)), nil
}

// handleWriteComment godoc
//
//	@Summary	Write a comment
//	@Tags		Comments
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		postID	path		int					true	"Post id"
//	@Param		body	body		CommentWriteRequest	true	"Comment"
//	@Success	201		{object}	rsdata.RsData{data=CommentWriteResponse}
//	@Failure	400		{object}	rsdata.RsData
//	@Failure	401		{object}	rsdata.RsData
//	@Failure	404
//	@Router		/posts/{postID}/comments [post]
func (s *Server) handleWriteComment(rq *rq) (response, error) {
	var req CommentWriteRequest
	if err := s.decode(rq.r, &req); err != nil {
		return response{}, err
	}
	actor, err := rq.Actor()
	if err != nil {
		return response{}, err
	}
	postID, err := pathID(rq.r, "postID")
	if err != nil {
		return response{}, err
	}
	c, err := s.posts.AddComment(rq.r.Context(), actor, postID, *req.Content)
	if err != nil {
		return response{}, err
	}
	return envelope(rsdata.OfData("201-1", s.tr.T(i18n.MsgCommentCreated, formatID(c.ID)), CommentWriteResponse{
		CommentDTO: newCommentDTO(c),
	})), nil
}

// handleModifyComment godoc
//
//	@Summary	Modify a comment
//	@Tags		Comments
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		postID		path		int					true	"Post id"
//	@Param		commentID	path		int					true	"Comment id"
//	@Param		body		body		CommentWriteRequest	true	"New content"
//	@Success	200			{object}	rsdata.RsData
//	@Failure	400			{object}	rsdata.RsData
//	@Failure	401			{object}	rsdata.RsData
//	@Failure	403			{object}	rsdata.RsData
//	@Failure	404
//	@Router		/posts/{postID}/comments/{commentID} [put]
func (s *Server) handleModifyComment(rq *rq) (response, error) {
	var req CommentWriteRequest
	if err := s.decode(rq.r, &req); err != nil {
		return response{}, err
	}
	actor, err := rq.Actor()
	if err != nil {
		return response{}, err
	}
	postID, err := pathID(rq.r, "postID")
	if err != nil {
		return response{}, err
	}
	commentID, err := pathID(rq.r, "commentID")
	if err != nil {
		return response{}, err
	}
	c, err := s.posts.ModifyComment(rq.r.Context(), actor, postID, commentID, *req.Content)
	if err != nil {
		return response{}, err
	}
	return envelope(rsdata.Of("200-1", s.tr.T(i18n.MsgCommentModified, formatID(c.ID)))), nil
}

// handleDeleteComment godoc
//
//	@Summary	Delete a comment
//	@Tags		Comments
//	@Produce	json
//	@Security	BearerAuth
//	@Param		postID		path		int	true	"Post id"
//	@Param		commentID	path		int	true	"Comment id"
//	@Success	200			{object}	rsdata.RsData
//	@Failure	401			{object}	rsdata.RsData
//	@Failure	403			{object}	rsdata.RsData
//	@Failure	404
//	@Router		/posts/{postID}/comments/{commentID} [delete]
func (s *Server) handleDeleteComment(rq *rq) (response, error) {
	actor, err := rq.Actor()
	if err != nil {
		return response{}, err
	}
	postID, err := pathID(rq.r, "postID")
	if err != nil {
		return response{}, err
	}
	commentID, err := pathID(rq.r, "commentID")
	if err != nil {
		return response{}, err
	}
	c, err := s.posts.DeleteComment(rq.r.Context(), actor, postID, commentID)
	if err != nil {
		return response{}, err
	}
	return envelope(rsdata.Of("200-1", s.tr.T(i18n.MsgCommentDeleted, formatID(c.ID)))), nil
}
