package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the ray id on requests and responses.
const Header = "X-Ray-ID"

// Local is the fiber locals key the ray id is stored under.
const Local = "ray_id"

// New returns middleware that tags every request with a ray id. An id
// already present on the request is kept, so upstream proxies can inject
// their own; otherwise a fresh UUID is generated. The id is echoed on the
// response header and stored in locals for logger.WithRayID.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(Local, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
