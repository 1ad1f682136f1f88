package cli

type Options struct {
	Config string `short:"c" long:"config" description:"config file (yaml)"`
	URL    string `short:"u" long:"url" description:"api url, overrides config"`

	Signup     SignupCommand     `command:"signup" description:"create an account and sign in"`
	Login      LoginCommand      `command:"login" description:"sign in"`
	Logout     NoArgs            `command:"logout" description:"sign out"`
	Status     NoArgs            `command:"status" description:"show session state"`
	Whoami     NoArgs            `command:"whoami" description:"show profile"`
	List       NoArgs            `command:"list" description:"list transcripts"`
	Get        IDCommand         `command:"get" description:"show transcript"`
	Create     CreateCommand     `command:"create" description:"create transcript"`
	Update     UpdateCommand     `command:"update" description:"update transcript"`
	Delete     IDCommand         `command:"delete" description:"delete transcript"`
	Transcribe TranscribeCommand `command:"transcribe" description:"transcribe audio file"`
}

type NoArgs struct{}

type SignupCommand struct {
	Email       string `short:"e" long:"email" description:"email" required:"true"`
	Password    string `short:"p" long:"password" env:"TRANSCRIPT_PASSWORD" description:"password"`
	DisplayName string `short:"n" long:"name" description:"display name"`
}

type LoginCommand struct {
	Email    string `short:"e" long:"email" description:"email" required:"true"`
	Password string `short:"p" long:"password" env:"TRANSCRIPT_PASSWORD" description:"password"`
}

type IDCommand struct {
	Args struct {
		ID string `positional-arg-name:"id" description:"transcript id"`
	} `positional-args:"yes" required:"yes"`
}

type CreateCommand struct {
	Text     string `short:"t" long:"text" description:"transcript text" required:"true"`
	Filename string `short:"f" long:"filename" description:"source file name"`
}

type UpdateCommand struct {
	Args struct {
		ID string `positional-arg-name:"id" description:"transcript id"`
	} `positional-args:"yes" required:"yes"`
	Text     string `short:"t" long:"text" description:"new text"`
	Filename string `short:"f" long:"filename" description:"new file name"`
}

type TranscribeCommand struct {
	Language string `short:"l" long:"language" description:"language hint, e.g. en"`
	ID       string `short:"i" long:"id" description:"re-transcribe existing transcript"`
	Args     struct {
		Location string `positional-arg-name:"audio" description:"audio file path or URL"`
	} `positional-args:"yes" required:"yes"`
}
