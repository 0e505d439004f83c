package irc

// IRC replies interpreted by the decoder.
const (
	rplWelcome = "001" // :Welcome message

	rplAway = "301" // <nick> :<away message>

	rplNamreply   = "353" // <=/*/@> <channel> :1*(@/ /+user)
	rplEndofnames = "366" // <channel> :End of names list

	rplTopic = "332" // <channel> <topic>

	rplMotd      = "372" // :- <text>
	rplMotdstart = "375" // :- <servername> Message of the day -
	rplEndofmotd = "376" // :End of MOTD command
	errNomotd    = "422" // :MOTD file missing
)
