package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "Command-line client for the Local desktop app"
	MsgRootLong     = "local-cli talks to the Local desktop app's GraphQL API.\nIt installs and enables the companion addon, starts the app when\nneeded, and waits for the API server before running any command."
	MsgConnectShort = "Bootstrap the connection to the Local app"
	MsgConnectLong  = "Connect verifies the Local app is installed, ensures the CLI addon\nis installed and enabled, starts (or restarts) the app when needed,\nand waits until the GraphQL API answers an authenticated request."
	MsgStatusShort  = "Show installation and connection status"
	MsgStartShort   = "Start the Local app"
	MsgStopShort    = "Stop the Local app"
	MsgRestartShort = "Restart the Local app"
	MsgDocsShort    = "Display documentation topics"
	MsgVersionShort = "Print version information"

	// Status messages
	MsgConnected      = "Connected: %s\n"
	MsgSubscriptions  = "Subscriptions: %s\n"
	MsgAuthConfigured = "Auth token: configured\n"
	MsgAuthAbsent     = "Auth token: not configured\n"

	// Error messages
	MsgErrInitPaths  = "failed to resolve platform paths: %w"
	MsgErrLoadConfig = "failed to load configuration: %w"
)
