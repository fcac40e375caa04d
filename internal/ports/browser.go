package ports

// BrowserOpener opens links in the user's browser
type BrowserOpener interface {
	Open(url string) error
}
