package domain

import "time"

type (
	ThreadId = int64
	ReplyId  = int64
)

type Category string

const (
	CategoryCareerAdvice      Category = "Career Advice"
	CategoryStudyGroups       Category = "Study Groups"
	CategoryJobLeads          Category = "Job Leads"
	CategoryGeneralDiscussion Category = "General Discussion"
	CategoryMentorshipCorner  Category = "Mentorship Corner"
)

// Categories lists the closed category set in display order.
var Categories = []Category{
	CategoryCareerAdvice,
	CategoryStudyGroups,
	CategoryJobLeads,
	CategoryGeneralDiscussion,
	CategoryMentorshipCorner,
}

func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Reply struct {
	Id         ReplyId   `json:"id"`
	AuthorName string    `json:"author"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

type Thread struct {
	Id         ThreadId  `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Category   Category  `json:"category"`
	AuthorName string    `json:"author"`
	AuthorId   AccountId `json:"author_id"`
	Likes      int       `json:"likes"`
	CreatedAt  time.Time `json:"created_at"`
	Replies    []Reply   `json:"replies"`
}

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title      string
	Body       string
	Category   Category
	AuthorName string
	AuthorId   AccountId
}
