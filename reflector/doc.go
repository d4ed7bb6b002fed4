/*
Package reflector implements the request reflector: a set of endpoints that
extract request data (body, headers, cookies, query parameters, path
variables) with one binding strategy each, record every extracted value in the
log and answer with a fixed text.

Everything a handler may need is carried explicitly by *Context: the request
and response handles, the HTTP method, the negotiated locale, the logger and a
*binding.Binding over the request. Nothing is resolved from parameter types.

Handlers come in a few shapes, adapted to HandlerFunc by:

	Text      func(*Context) (string, error)           returned text is written as the body
	Streams   func(*Context, io.Reader, io.Writer) error  body stream in, response stream out
	Entity    func(*Context, message.Entity[In]) (message.Entity[Out], error)
	Bound     binding.Rules + func(*Context, binding.Values) (string, error)
	Attribute func(*Context, *T) (string, error)       T is bound with binding.BindAttribute

Routes returns the route table. It is plain data; the server package registers
it on a router.
*/
package reflector
