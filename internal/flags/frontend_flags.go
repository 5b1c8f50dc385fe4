package flags

import "github.com/tc39tracker/tracker/internal/config"

var (
	DefaultTheme = config.GenFlag("frontend.theme.default", "light", `Theme variant used for rendering ("light" or "dark")`)

	StagesDisclaimer = config.GenFlag("frontend.stages.disclaimer", true, "Show the source disclaimer on the stages page")

	ECMABaseURL = config.GenFlag("frontend.ecma.base_url", "https://www.ecma-international.org/publications-and-standards/standards/", "Base URL of the ECMA standards pages")

	FontsURL = config.GenFlag("frontend.fonts_url", "https://fonts.googleapis.com/css2?family=Nunito:ital,wght@0,400;0,600;0,700;0,800;1,400&display=swap", "Stylesheet URL for web fonts (empty disables)")
)
