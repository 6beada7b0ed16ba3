package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case SignupResult:
		fmt.Printf("User created: %s\n", v.UserID)
	case SigninResult:
		fmt.Printf("Token: %s\n", v.Token)
	case Space:
		o.printSpace(v)
	case SpaceDetail:
		o.printSpaceDetail(v)
	case SpaceList:
		o.printSpaceList(v)
	case SpaceElement:
		fmt.Printf("Placed: %s (element %s) at (%d, %d)\n", v.ID, v.ElementID, v.X, v.Y)
	case Element:
		o.printElement(v)
	case ElementList:
		for _, e := range v.Elements {
			o.printElement(e)
		}
	case Avatar:
		o.printAvatar(v)
	case AvatarList:
		for _, a := range v.Avatars {
			o.printAvatar(a)
		}
	case Map:
		fmt.Printf("Map: %s (%s) %s\n", v.Name, v.ID, v.Dimensions)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	AvatarID string `json:"avatar_id,omitempty"`
}

// SignupResult response type
type SignupResult struct {
	UserID string `json:"user_id"`
}

// SigninResult response type
type SigninResult struct {
	Token string `json:"token"`
}

// Space response type
type Space struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dimensions string `json:"dimensions"`
	Thumbnail  string `json:"thumbnail,omitempty"`
}

// SpaceElement response type
type SpaceElement struct {
	ID        string `json:"id"`
	ElementID string `json:"element_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// SpaceDetail response type
type SpaceDetail struct {
	Space
	Elements []SpaceElement `json:"elements"`
}

// SpaceList response type
type SpaceList struct {
	Spaces []Space `json:"spaces"`
}

// Element response type
type Element struct {
	ID       string `json:"id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Static   bool   `json:"static"`
	ImageURL string `json:"image_url"`
}

// ElementList response type
type ElementList struct {
	Elements []Element `json:"elements"`
}

// Avatar response type
type Avatar struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// AvatarList response type
type AvatarList struct {
	Avatars []Avatar `json:"avatars"`
}

// Map response type
type Map struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dimensions string `json:"dimensions"`
	Thumbnail  string `json:"thumbnail,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Role: %s\n", u.Role)
	if u.AvatarID != "" {
		fmt.Printf("Avatar: %s\n", u.AvatarID)
	}
}

func (o *Output) printSpace(s Space) {
	fmt.Printf("Space: %s (%s)\n", s.Name, s.ID)
	fmt.Printf("Dimensions: %s\n", s.Dimensions)
	if s.Thumbnail != "" {
		fmt.Printf("Thumbnail: %s\n", s.Thumbnail)
	}
}

func (o *Output) printSpaceDetail(s SpaceDetail) {
	o.printSpace(s.Space)
	fmt.Printf("Elements (%d):\n", len(s.Elements))
	for _, e := range s.Elements {
		fmt.Printf("  - %s (element %s) at (%d, %d)\n", e.ID, e.ElementID, e.X, e.Y)
	}
}

func (o *Output) printSpaceList(l SpaceList) {
	fmt.Printf("Spaces (%d):\n", len(l.Spaces))
	for _, s := range l.Spaces {
		fmt.Printf("  - %s (%s) %s\n", s.Name, s.ID, s.Dimensions)
	}
}

func (o *Output) printElement(e Element) {
	staticStr := "no"
	if e.Static {
		staticStr = "yes"
	}
	fmt.Printf("Element: %s %dx%d static=%s %s\n", e.ID, e.Width, e.Height, staticStr, e.ImageURL)
}

func (o *Output) printAvatar(a Avatar) {
	fmt.Printf("Avatar: %s (%s) %s\n", a.Name, a.ID, a.ImageURL)
}
