package models

import "time"

// Like is a likes-list entry; at most one per distinct user on any post.
type Like struct {
	User string `json:"user" bson:"user"`
}

type Comment struct {
	ID     string    `json:"id" bson:"id"`
	User   string    `json:"user" bson:"user"`
	Text   string    `json:"text" bson:"text"`
	Name   string    `json:"name" bson:"name"`
	Avatar string    `json:"avatar" bson:"avatar"`
	Date   time.Time `json:"date" bson:"date"`
}

// Post embeds its likes and comments; name and avatar are author snapshots
// taken at creation time.
type Post struct {
	ID       string    `json:"id" bson:"_id"`
	User     string    `json:"user" bson:"user"`
	Text     string    `json:"text" bson:"text"`
	Name     string    `json:"name" bson:"name"`
	Avatar   string    `json:"avatar" bson:"avatar"`
	Likes    []Like    `json:"likes" bson:"likes"`
	Comments []Comment `json:"comments" bson:"comments"`
	Date     time.Time `json:"date" bson:"date"`
}

// PostRequest covers both post creation and comments; each is just text.
type PostRequest struct {
	Text string `json:"text"`
}

func (r *PostRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Text == "" {
		errors["text"] = "Text field is required"
	} else if len(r.Text) < 10 || len(r.Text) > 300 {
		errors["text"] = "Post must be between 10 and 300 characters"
	}

	return errors
}
