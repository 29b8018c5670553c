package nvidia

// LoginSuccessHTML is the HTML body shown to the user after the browser
// redirect is captured. It is served unconditionally, even when no code could
// be extracted, so the browser side of the flow always completes visibly.
const LoginSuccessHTML = "<html><body><h1>Login Successful</h1><p>You can return to OpenNOW Rewrite.</p></body></html>"

// loginSuccessResponse is the complete fixed HTTP response written back to
// the callback client.
const loginSuccessResponse = "HTTP/1.1 200 OK\r\n" +
	"Content-Type: text/html\r\n\r\n" +
	LoginSuccessHTML
