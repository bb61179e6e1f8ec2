package collision

import "github.com/milk9111/glaze2d/physics"

// Collider runs the narrow phase for broadphase pairs. It owns a single
// scratch Contact that every test overwrites, so it must not be shared
// between goroutines and a contact handed to a callback is only valid for
// the duration of that call.
type Collider struct {
	contact physics.Contact
	// Count is the number of Collide calls since the last reset.
	Count int
}

func NewCollider() *Collider {
	return &Collider{}
}

// Contact exposes the scratch record of the last test.
func (c *Collider) Contact() *physics.Contact {
	return &c.contact
}

func (c *Collider) ResetCount() {
	c.Count = 0
}

// Collide classifies a pair, runs the matching test and applies body
// responses. On acceptance both proxies' callbacks fire, A first.
func (c *Collider) Collide(a, b *Proxy) bool {
	c.Count++

	if a.Static && b.Static {
		return false
	}
	if a.Sensor && b.Sensor {
		return false
	}
	if !a.Active || !b.Active {
		return false
	}
	if !Check(a.Filter, b.Filter) {
		return false
	}

	contact := &c.contact
	collided := false

	switch {
	case a.Sensor || b.Sensor:
		ba, bb := a.Bounds(), b.Bounds()
		collided = StaticAABBvsStaticAABB(ba.Position, ba.Extents, bb.Position, bb.Extents, contact)
	case !a.Static && !b.Static:
		switch {
		case a.Body.IsBullet && b.Body.IsBullet:
			return false
		case a.Body.IsBullet:
			if c.BulletAABB(a, b) {
				a.Body.RespondBulletCollision(contact)
				collided = true
			}
		case b.Body.IsBullet:
			if c.BulletAABB(b, a) {
				b.Body.RespondBulletCollision(contact)
				collided = true
			}
		default:
			ba, bb := a.Bounds(), b.Bounds()
			if StaticAABBvsStaticAABB(ba.Position, ba.Extents, bb.Position, bb.Extents, contact) {
				a.Body.RespondDynamicCollision(contact, -1)
				b.Body.RespondDynamicCollision(contact, 1)
				collided = true
			}
		}
	default:
		static, dynamic := a, b
		if !a.Static {
			static, dynamic = b, a
		}
		if dynamic.Body.IsBullet {
			if c.BulletAABB(dynamic, static) {
				dynamic.Body.RespondBulletCollision(contact)
				collided = true
			}
		} else {
			bd, bs := dynamic.Bounds(), static.Bounds()
			AABBvsStaticSolidAABB(bd.Position, bd.Extents, bs.Position, bs.Extents, static.ResponseBias, contact)
			collided = dynamic.Body.RespondStaticCollision(contact)
		}
	}

	if collided {
		a.Collide(b, contact)
		b.Collide(a, contact)
	}
	return collided
}

// BulletAABB sweeps the bullet proxy along its body delta against obstacle.
func (c *Collider) BulletAABB(bullet, obstacle *Proxy) bool {
	bb, bo := bullet.Bounds(), obstacle.Bounds()
	return StaticAABBvsSweptAABB(bo.Position, bo.Extents, bb.Position, bb.Extents, bullet.Body.Delta, &c.contact)
}

// RayAABB casts ray against proxy and reports a hit to the ray.
func (c *Collider) RayAABB(ray *Ray, proxy *Proxy) bool {
	bp := proxy.Bounds()
	if !StaticSegmentvsStaticAABB(bp.Position, bp.Extents, ray.Origin, ray.Delta, 0, 0, &c.contact) {
		return false
	}
	ray.Report(c.contact.Delta, c.contact.Normal, proxy)
	return true
}
