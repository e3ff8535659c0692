package domain

// Banner is a promotional banner shown on the home feed
type Banner struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	Description     string `json:"description"`
	ButtonText      string `json:"button_text"`
	BackgroundColor string `json:"background_color"`
	AccentColor     string `json:"accent_color"`
	Icon            string `json:"icon"`
}
