package dto

import (
	issuedto "github.com/orris-inc/tracker/internal/application/issue/dto"
)

// ActivityMessage is pushed to live activity listeners of a project.
type ActivityMessage = issuedto.EventDTO

// ActivityEntryDTO is one row of the project activity page.
type ActivityEntryDTO struct {
	*issuedto.EventDTO
	IssueTitle string `json:"issue_title"`
	AuthorName string `json:"author_name"`
}
