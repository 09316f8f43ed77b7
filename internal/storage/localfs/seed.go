package localfs

import (
	"time"

	"github.com/aviationlaunchpad/launchpad/internal/domain"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// seedDocument builds the starter threads shown to a fresh single-device
// deployment so the forum doesn't open onto an empty page.
func seedDocument() forumDocument {
	now := nowUTC()
	day := 24 * time.Hour

	return forumDocument{
		NextThreadId: 6,
		NextReplyId:  4,
		Threads: []domain.Thread{
			{
				Id:         1,
				Title:      "Best tips for your first MRO interview?",
				Body:       "I have my first MRO interview next week with Jazz Aviation. Any tips from people who've been through it?",
				Category:   domain.CategoryCareerAdvice,
				AuthorName: "Sarah M.",
				Likes:      8,
				CreatedAt:  now.Add(-1 * day),
				Replies: []domain.Reply{
					{Id: 1, AuthorName: "John D.", Body: "Be prepared to talk about Human Factors. They love that.", CreatedAt: now.Add(-22 * time.Hour)},
					{Id: 2, AuthorName: "Mike T.", Body: "Dress sharp and bring your logbook!", CreatedAt: now.Add(-21 * time.Hour)},
				},
			},
			{
				Id:         2,
				Title:      "M2 license study group — who's in?",
				Body:       "Looking for people studying for their M2. I'm in Ontario and would love to set up a virtual study group.",
				Category:   domain.CategoryStudyGroups,
				AuthorName: "James R.",
				Likes:      5,
				CreatedAt:  now.Add(-2 * day),
				Replies:    []domain.Reply{},
			},
			{
				Id:         3,
				Title:      "Just landed my first job at Jazz Aviation!",
				Body:       "After 3 months of applying, I finally got the call! Thanks to everyone here who helped with my resume and interview prep.",
				Category:   domain.CategoryGeneralDiscussion,
				AuthorName: "Priya K.",
				Likes:      31,
				CreatedAt:  now.Add(-3 * day),
				Replies: []domain.Reply{
					{Id: 3, AuthorName: "Sarah M.", Body: "Congrats!! That's huge.", CreatedAt: now.Add(-70 * time.Hour)},
				},
			},
			{
				Id:         4,
				Title:      "What tools should a new AME carry?",
				Body:       "Starting my first job next month. What's the essential toolkit I should bring on day one?",
				Category:   domain.CategoryGeneralDiscussion,
				AuthorName: "Mike T.",
				Likes:      12,
				CreatedAt:  now.Add(-4 * day),
				Replies:    []domain.Reply{},
			},
			{
				Id:         5,
				Title:      "Co-op posting at Bombardier — apply now",
				Body:       "Bombardier has a new co-op posting for avionics technicians in Montreal. Check the Careers section for details!",
				Category:   domain.CategoryJobLeads,
				AuthorName: "Admin",
				Likes:      9,
				CreatedAt:  now.Add(-5 * day),
				Replies:    []domain.Reply{},
			},
		},
	}
}
