package arena

func (game Arena) CastHealth(data interface{}) *Health {
	return data.(*Health)
}

type Health struct {
	maxLife int
	life    int
}

func NewHealth(maxlife int) *Health {
	return &Health{
		maxLife: maxlife,
		life:    maxlife,
	}
}

func (health *Health) Restore() *Health {
	health.life = health.maxLife
	return health
}

func (health Health) GetMaxLife() int {
	return health.maxLife
}

func (health Health) GetLife() int {
	return health.life
}

func (health *Health) SetLife(life int) {
	if life < 0 {
		life = 0
	}

	if life > health.maxLife {
		life = health.maxLife
	}

	health.life = life
}

func (health *Health) AddLife(life int) {
	health.SetLife(life + health.GetLife())
}
