// Package httpapp provides the HTTP server for the board API.
//
//	@title						Board API
//	@version					1.0
//	@description				Members, posts and comments over a small REST API.
//	@description
//	@description				## Authentication
//	@description
//	@description				Join once, then log in to read back your API key. Send it on every
//	@description				request that acts on your behalf:
//	@description				```bash
//	@description				curl -X POST /members/join -d '{"username":"user1","password":"1234","nickname":"유저1"}'
//	@description				curl -X POST /members/login -d '{"username":"user1","password":"1234"}'
//	@description				# data.apiKey in the response
//	@description				curl -X POST /posts -H "Authorization: Bearer API_KEY" -d '{"title":"제목","content":"내용"}'
//	@description				```
//	@description
//	@description				## Result envelope
//	@description				Mutating endpoints answer with `{"resultCode","msg","data"}`. The HTTP status is
//	@description				the number before the dash in `resultCode` (`201-1` is 201, `403-2` is 403).
//	@description				A missing resource is a bare 404 with an empty body.
//	@description
//	@description				| Code | Meaning |
//	@description				|------|---------|
//	@description				| 400-1 | validation failed, one `field-Constraint-rule` line per violation |
//	@description				| 400-2 | request body is not valid JSON |
//	@description				| 401-1 | no Authorization header |
//	@description				| 401-2 | Authorization header is not `Bearer <key>` |
//	@description				| 401-3 | unknown API key |
//	@description				| 403-1 | not the author (modify) |
//	@description				| 403-2 | not the author (delete) |
//	@description				| 409-1 | username already taken |
//
//	@contact.name				Board
//	@license.name				MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				"Bearer " followed by the API key returned by /members/login
//
//	@tag.name					Members
//	@tag.description			Registration, login and the current member.
//
//	@tag.name					Posts
//	@tag.description			Posts. Only the author may modify or delete a post; deleting a post deletes its comments.
//
//	@tag.name					Comments
//	@tag.description			Comments belong to exactly one post and are addressed through it.
package httpapp
