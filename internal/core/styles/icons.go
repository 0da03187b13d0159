package styles

var (
	IconCheck    = "✓"
	IconEmpty    = "○"
	IconCross    = "✗"
	IconCamera   = "📸"
	IconTrophy   = "🏆"
	IconFlex     = "💪"
	IconParty    = "🎉"
	IconRocket   = "🚀"
	IconWarning  = "⚠"
	IconInfo     = "ℹ"
	IconCalendar = "📅"
)

// Notification level icons.
var (
	IconNotifyInfo    = IconInfo
	IconNotifyWarning = IconWarning
	IconNotifyError   = IconCross
)
