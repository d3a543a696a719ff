// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"

	"cheermate/internal/app/system/auth"
	"cheermate/internal/app/system/clubctx"
)

// SiteName is the product name shown in page chrome.
const SiteName = "CheerMate"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn   bool
	UserName     string
	ProfileImage string

	// Club context
	ActiveClubID   string
	ActiveClubName string
	ClubOptions    []clubctx.Option

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken string // Token for form submission
}

// NewBaseVM creates a fully populated BaseVM for a page.
// This is the preferred way to create a BaseVM for embedding in view models.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	vm := BaseVM{
		SiteName:    SiteName,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}

	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.UserName = u.Name
		vm.ProfileImage = u.ProfileImage
		vm.ClubOptions = clubctx.Options(u)
		if c := clubctx.Active(u); c != nil {
			vm.ActiveClubID = strconv.FormatInt(c.ID, 10)
			vm.ActiveClubName = c.Name
		}
	}
	return vm
}
