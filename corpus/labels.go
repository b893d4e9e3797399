package corpus

// Intent labels understood by the command router.
const (
	Memorizar             Label = "MEMORIZAR"
	VolumenSubir          Label = "VOLUMEN_SUBIR"
	VolumenBajar          Label = "VOLUMEN_BAJAR"
	Silencio              Label = "SILENCIO"
	AbrirApp              Label = "ABRIR_APP"
	BuscarWeb             Label = "BUSCAR_WEB"
	LeerDocumento         Label = "LEER_DOCUMENTO"
	ReproducirMedia       Label = "REPRODUCIR_MEDIA"
	Alarma                Label = "ALARMA"
	Clima                 Label = "CLIMA"
	HoraFecha             Label = "HORA_FECHA"
	Traducir              Label = "TRADUCIR"
	Calcular              Label = "CALCULAR"
	ModoZen               Label = "MODO_ZEN"
	AgendaVer             Label = "AGENDA_VER"
	CambiarUbicacion      Label = "CAMBIAR_UBICACION"
	GitStatus             Label = "GIT_STATUS"
	GitPush               Label = "GIT_PUSH"
	GitInit               Label = "GIT_INIT"
	GitPull               Label = "GIT_PULL"
	CambiarDirectorio     Label = "CAMBIAR_DIRECTORIO"
	MiIP                  Label = "MI_IP"
	LiberarPuerto         Label = "LIBERAR_PUERTO"
	InstalarDependencias  Label = "INSTALAR_DEPENDENCIAS"
	BuildProyecto         Label = "BUILD_PROYECTO"
	HealthIniciar         Label = "HEALTH_INICIAR"
	HealthPausar          Label = "HEALTH_PAUSAR"
	HealthReanudar        Label = "HEALTH_REANUDAR"
	HealthTerminar        Label = "HEALTH_TERMINAR"
	HealthTiempo          Label = "HEALTH_TIEMPO"
	HealthProximoDescanso Label = "HEALTH_PROXIMO_DESCANSO"
	StudyResumePDF        Label = "STUDY_RESUME_PDF"
	StudyFlashcards       Label = "STUDY_FLASHCARDS"
	GamesListar           Label = "GAMES_LISTAR"
	GamesEscanear         Label = "GAMES_ESCANEAR"
	GamesAbrir            Label = "GAMES_ABRIR"
	GamesOptimizar        Label = "GAMES_OPTIMIZAR"
	GamesCerrar           Label = "GAMES_CERRAR"
	PerfilVer             Label = "PERFIL_VER"
	PerfilNombre          Label = "PERFIL_NOMBRE"
	PerfilIdioma          Label = "PERFIL_IDIOMA"
	Brillo                Label = "BRILLO"
	MediaControl          Label = "MEDIA_CONTROL"
	BloquearPantalla      Label = "BLOQUEAR_PANTALLA"
	ApagarPantalla        Label = "APAGAR_PANTALLA"
	MatarProceso          Label = "MATAR_PROCESO"
	MinimizarTodo         Label = "MINIMIZAR_TODO"
	Maximizar             Label = "MAXIMIZAR"
	ApagarSistema         Label = "APAGAR_SISTEMA"
	ReiniciarSistema      Label = "REINICIAR_SISTEMA"
	CancelarApagado       Label = "CANCELAR_APAGADO"
	VaciarPapelera        Label = "VACIAR_PAPELERA"
	CapturaPantalla       Label = "CAPTURA_PANTALLA"
	LimpiarTemp           Label = "LIMPIAR_TEMP"
	ProcesosPesados       Label = "PROCESOS_PESADOS"
	LimpiezaProfunda      Label = "LIMPIEZA_PROFUNDA"
	RutinaBuenosDias      Label = "RUTINA_BUENOS_DIAS"
	RutinaTrabajo         Label = "RUTINA_TRABAJO"
	RutinaFinTrabajo      Label = "RUTINA_FIN_TRABAJO"
	RutinasListar         Label = "RUTINAS_LISTAR"
	NetworkDispositivos   Label = "NETWORK_DISPOSITIVOS"
	NetworkEscanear       Label = "NETWORK_ESCANEAR"
	NetworkDashboard      Label = "NETWORK_DASHBOARD"
	PomodoroIniciar       Label = "POMODORO_INICIAR"
	PomodoroPausar        Label = "POMODORO_PAUSAR"
	PomodoroEstado        Label = "POMODORO_ESTADO"
	Ayuda                 Label = "AYUDA"
	AbrirConfiguracion    Label = "ABRIR_CONFIGURACION"
	AbrirPerfil           Label = "ABRIR_PERFIL"
	SistemaEstado         Label = "SISTEMA_ESTADO"
	Conversacion          Label = "CONVERSACION"
)
