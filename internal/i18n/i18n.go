// Package i18n holds the user-facing message catalog.
//
// Message keys are the English format strings. Korean translations are
// registered in the default golang.org/x/text catalog at init. Numeric ids
// are passed pre-formatted as %s so that locale digit grouping never
// changes them.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	MsgOK = "OK"

	MsgJoined          = "Welcome, %s. Your registration is complete."
	MsgLoggedIn        = "Welcome, %s."
	MsgUsernameTaken   = "The username is already in use."
	MsgUnknownUsername = "The username does not exist."
	MsgWrongPassword   = "The password does not match."

	MsgMissingCredentials   = "The request has no authentication header."
	MsgMalformedCredentials = "The authentication header is not in the expected format."
	MsgInvalidCredentials   = "The API key is not valid."

	MsgPostCreated         = "Post %s has been created."
	MsgPostModified        = "Post %s has been modified."
	MsgPostDeleted         = "Post %s has been deleted."
	MsgPostModifyDenied    = "You are not allowed to modify this post."
	MsgPostDeleteDenied    = "You are not allowed to delete this post."
	MsgCommentCreated      = "Comment %s has been created."
	MsgCommentModified     = "Comment %s has been modified."
	MsgCommentDeleted      = "Comment %s has been deleted."
	MsgCommentModifyDenied = "You are not allowed to modify this comment."
	MsgCommentDeleteDenied = "You are not allowed to delete this comment."

	MsgMalformedRequest = "The request body is malformed."
	MsgInternalError    = "An internal server error occurred."
)

var korean = map[string]string{
	MsgJoined:          "회원가입이 완료되었습니다. %s님 환영합니다.",
	MsgLoggedIn:        "%s님 환영합니다.",
	MsgUsernameTaken:   "이미 사용중인 아이디입니다.",
	MsgUnknownUsername: "존재하지 않는 아이디입니다.",
	MsgWrongPassword:   "비밀번호가 일치하지 않습니다.",

	MsgMissingCredentials:   "헤더에 인증 정보가 없습니다.",
	MsgMalformedCredentials: "헤더의 인증 정보 형식이 올바르지 않습니다.",
	MsgInvalidCredentials:   "API 키가 올바르지 않습니다.",

	MsgPostCreated:         "%s번 게시물이 생성되었습니다.",
	MsgPostModified:        "%s번 게시물이 수정되었습니다.",
	MsgPostDeleted:         "%s번 게시물이 삭제되었습니다.",
	MsgPostModifyDenied:    "수정 권한이 없습니다.",
	MsgPostDeleteDenied:    "삭제 권한이 없습니다.",
	MsgCommentCreated:      "%s번 댓글이 생성되었습니다.",
	MsgCommentModified:     "%s번 댓글이 수정되었습니다.",
	MsgCommentDeleted:      "%s번 댓글이 삭제되었습니다.",
	MsgCommentModifyDenied: "댓글 수정 권한이 없습니다.",
	MsgCommentDeleteDenied: "댓글 삭제 권한이 없습니다.",

	MsgMalformedRequest: "잘못된 형식의 요청 데이터입니다.",
	MsgInternalError:    "서버 내부 오류가 발생했습니다.",
}

func init() {
	for key, msg := range korean {
		if err := message.SetString(language.Korean, key, msg); err != nil {
			panic(err)
		}
	}
}

// Translator renders catalog messages in one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Korean})

// New returns a translator for lang (a BCP 47 tag such as "en" or "ko").
// Unknown or unsupported tags fall back to English.
func New(lang string) *Translator {
	tag := language.English
	if parsed, err := language.Parse(lang); err == nil {
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No && idx == 1 {
			tag = language.Korean
		}
	}
	return &Translator{tag: tag, printer: message.NewPrinter(tag)}
}

func (t *Translator) Lang() string {
	return t.tag.String()
}

// T formats the message registered under key.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}
