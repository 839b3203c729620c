package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gorge/internal/config"
	"github.com/Faultbox/gorge/internal/engine/clock"
	"github.com/Faultbox/gorge/internal/engine/collision"
	"github.com/Faultbox/gorge/internal/engine/mesh"
	"github.com/Faultbox/gorge/internal/engine/physics"
	"github.com/Faultbox/gorge/internal/engine/pool"
	"github.com/Faultbox/gorge/internal/engine/resource"
	"github.com/Faultbox/gorge/internal/engine/scene"
	"github.com/Faultbox/gorge/internal/game/entity"
	"github.com/Faultbox/gorge/internal/game/player"
	"github.com/Faultbox/gorge/pkg/math"
)

// SceneHandle addresses a scene in the scene pool.
type SceneHandle = pool.Handle[*scene.Scene]

// Deps are the engine services a level is assembled from.
type Deps struct {
	Resources *resource.Manager
	Surfaces  *mesh.Storage
	Scenes    *pool.Pool[*scene.Scene]
	Log       *zap.Logger
}

func (d Deps) validate() error {
	switch {
	case d.Resources == nil:
		return errors.New("missing resource manager")
	case d.Surfaces == nil:
		return errors.New("missing surface storage")
	case d.Scenes == nil:
		return errors.New("missing scene pool")
	}
	return nil
}

// Level is an assembled, playable scene.
type Level struct {
	scenes   *pool.Pool[*scene.Scene]
	handle   SceneHandle
	root     scene.NodeHandle // map instance root, zero if the map failed to load
	player   *player.Player
	entities *entity.Manager

	collision      physics.GeometryHandle
	collisionStats collision.Stats
}

// NewLevel builds a level from cfg. Missing or unusable assets are logged and
// skipped; the level is still playable, possibly without static collision.
func NewLevel(deps Deps, cfg *config.Config) (*Level, error) {
	if err := deps.validate(); err != nil {
		return nil, fmt.Errorf("assembling level: %w", err)
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	sc := scene.New()
	sc.Physics().Gravity = math.Vec3FromArray(cfg.Physics.Gravity)
	sc.Physics().MaxStep = cfg.Physics.MaxStep

	l := &Level{
		scenes:   deps.Scenes,
		entities: entity.NewManager(),
	}

	if model, ok := requestModel(deps.Resources, cfg.Level.MapModel, log); ok {
		l.root = model.Instantiate(sc, deps.Surfaces)
		l.addStaticCollision(sc, deps.Surfaces, cfg.Level.CollisionNode, log)
	}

	for _, set := range cfg.Level.Entities {
		l.spawnEntities(sc, deps, set, log)
	}

	l.player = player.New(sc, cfg.Player)
	l.entities.SetPlayer(l.entities.Spawn(entity.TypePlayer, "player", "", l.player.Camera()))

	sc.UpdateTransforms()
	l.entities.Sync(sc)
	l.handle = deps.Scenes.Spawn(sc)

	log.Info("level assembled",
		zap.String("map", cfg.Level.MapModel),
		zap.Int("nodes", sc.NodeCount()),
		zap.Int("entities", l.entities.Count()),
		zap.Int("static_triangles", sc.Physics().TriangleCount()),
	)
	return l, nil
}

// requestModel resolves path to a model resource. Failures are logged.
func requestModel(res *resource.Manager, path string, log *zap.Logger) (*resource.Model, bool) {
	h, err := res.Request(path)
	if err != nil {
		log.Warn("model unavailable", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	r, ok := res.Borrow(h)
	if !ok {
		log.Warn("model handle went stale", zap.String("path", path))
		return nil, false
	}
	model, ok := r.Model()
	if !ok {
		log.Warn("resource is not a model", zap.String("path", path), zap.String("kind", fmt.Sprintf("%T", r.Kind)))
		return nil, false
	}
	return model, true
}

// addStaticCollision turns the named mesh node under the map root into the
// scene's static geometry.
func (l *Level) addStaticCollision(sc *scene.Scene, surfaces *mesh.Storage, node string, log *zap.Logger) {
	ex := collision.NewExtractor(surfaces, log.Named("collision"))
	geom, stats, err := ex.ExtractNode(sc, l.root, node)
	if err != nil {
		var reason string
		switch {
		case errors.Is(err, collision.ErrNodeNotFound):
			reason = "collision node not found"
		case errors.Is(err, collision.ErrNotMesh):
			reason = "collision node is not a mesh"
		case errors.Is(err, collision.ErrSurfaceUnavailable):
			reason = "collision surface unavailable"
		default:
			reason = "collision extraction failed"
		}
		log.Warn(reason+", level has no static collision", zap.String("node", node), zap.Error(err))
		return
	}

	l.collision = sc.Physics().AddStaticGeometry(geom)
	l.collisionStats = stats
	log.Info("static collision added",
		zap.String("node", node),
		zap.Int("triangles", stats.Triangles),
		zap.Int("degenerate", stats.Degenerate),
		zap.Int("invalid", stats.Invalid),
	)
}

func (l *Level) spawnEntities(sc *scene.Scene, deps Deps, set config.EntitySet, log *zap.Logger) {
	if set.Count <= 0 {
		return
	}
	model, ok := requestModel(deps.Resources, set.Model, log)
	if !ok {
		return
	}

	offset := math.Vec3FromArray(set.Offset)
	step := math.Vec3FromArray(set.Step)
	for i, count := 0, set.Count; i < count; i++ {
		root := model.Instantiate(sc, deps.Surfaces)
		if n, ok := sc.Node(root); ok {
			n.Position = offset.Add(step.Scale(float32(i)))
		}
		l.entities.Spawn(entity.TypeMonster, model.Name, set.Model, root)
	}
}

// Scene returns the level's scene, or nil once the level is unloaded.
func (l *Level) Scene() *scene.Scene {
	sc, ok := l.scenes.Borrow(l.handle)
	if !ok {
		return nil
	}
	return *sc
}

// SceneHandle returns the handle of the level's scene in the scene pool.
func (l *Level) SceneHandle() SceneHandle {
	return l.handle
}

// Root returns the map instance root. ok is false when the map did not load.
func (l *Level) Root() (scene.NodeHandle, bool) {
	return l.root, !l.root.IsNone()
}

// Player returns the level's player.
func (l *Level) Player() *player.Player {
	return l.player
}

// Entities returns the level's actor registry.
func (l *Level) Entities() *entity.Manager {
	return l.entities
}

// StaticCollision returns the registered static geometry handle and the
// extraction stats. ok is false when the level has no static collision.
func (l *Level) StaticCollision() (physics.GeometryHandle, collision.Stats, bool) {
	return l.collision, l.collisionStats, !l.collision.IsNone()
}

// Update advances the level by one tick.
func (l *Level) Update(t clock.GameTime) {
	sc := l.Scene()
	if sc == nil {
		return
	}
	l.player.Update(sc, t)
	sc.Physics().Step(t.Seconds())
	l.player.Sync(sc)
	sc.UpdateTransforms()
	l.entities.Sync(sc)
}

// close releases the level's scene from the pool.
func (l *Level) close() {
	l.scenes.Free(l.handle)
}
